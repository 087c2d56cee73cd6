package domain

// RelationshipEntry records how one NPC relates to another actor or object.
type RelationshipEntry struct {
	OwnerNPCID string `json:"owner_npc_id"`
	TargetID   string `json:"target_id"`
	Label      string `json:"label"`
}

// AuthorizedBy reports whether actorID may mutate this entry. Mutation
// authority is owner-based: only the NPC named by OwnerNPCID, compared
// case-insensitively, may change its own relationships.
func (r RelationshipEntry) AuthorizedBy(actorID string) bool {
	return NormalizeKey(r.OwnerNPCID) == NormalizeKey(actorID)
}

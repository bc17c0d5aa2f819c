package user

// ChangeRoleDTO is the body of a role update; the target user comes from
// the route path.
type ChangeRoleDTO struct {
	NewRole string `json:"newRole"`
}

// DivisionMembershipDTO names the division being assigned or removed.
type DivisionMembershipDTO struct {
	DivisionID int64 `json:"divisionId"`
}

// OUMembershipDTO names the OU being assigned or removed.
type OUMembershipDTO struct {
	OUID int64 `json:"ouId"`
}

package auth

// ScopeResolver derives the set of division ids a principal may touch.
// Admins are unrestricted; everyone else gets exactly their stored division
// memberships. OU membership does not expand into the OU's divisions.
type ScopeResolver struct{}

func NewScopeResolver() *ScopeResolver {
	return &ScopeResolver{}
}

// AuthorizedDivisionIDs returns the caller's division scope. When
// unrestricted is true the id slice is meaningless and every division is in
// scope.
func (s *ScopeResolver) AuthorizedDivisionIDs(u *User) (ids []int64, unrestricted bool) {
	if u == nil {
		return nil, false
	}
	if u.Role == RoleAdmin {
		return nil, true
	}
	return u.DivisionIDs, false
}

// IsDivisionInScope reports whether the principal may touch divisionID.
func (s *ScopeResolver) IsDivisionInScope(u *User, divisionID int64) bool {
	ids, unrestricted := s.AuthorizedDivisionIDs(u)
	if unrestricted {
		return true
	}
	for _, id := range ids {
		if id == divisionID {
			return true
		}
	}
	return false
}

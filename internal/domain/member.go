package domain

// Member is a team member that tasks can be assigned to.
// Members are reference data; tasks hold a copy.
type Member struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Name   string `json:"name" yaml:"name" toml:"name"`
	Avatar string `json:"avatar" yaml:"avatar" toml:"avatar"`
}

// Directory is a lookup table of known members.
type Directory []Member

// Lookup returns the member with the given ID.
func (d Directory) Lookup(id string) (Member, bool) {
	for _, m := range d {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

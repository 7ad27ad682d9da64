package role

// Role représente le rôle d'un utilisateur dans le système
type Role int

const (
	User  Role = iota // utilisateur standard (demandeur)
	Admin             // administrateur (traitement des demandes)
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	default:
		return "user"
	}
}

// FromString convertit la représentation texte en Role (inconnu => User)
func FromString(s string) Role {
	if s == "admin" {
		return Admin
	}
	return User
}

package entity

// Session identidad resuelta a partir del token de la petición.
type Session struct {
	UserID string
	Email  string
	Role   Role // vacío si el claim no es un rol válido
}

// Can delega en el rol de la sesión.
func (s *Session) Can(c Capability) bool {
	if s == nil {
		return false
	}
	return s.Role.Can(c)
}

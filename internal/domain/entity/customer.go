package entity

// Customer representa un cliente. Name se usa como clave de búsqueda en la limpieza.
type Customer struct {
	ID       string
	Name     string
	ImageURL string // vacío si no tiene foto
}

// HasImage indica si el cliente tiene una referencia de imagen.
func (c *Customer) HasImage() bool {
	return c != nil && c.ImageURL != ""
}

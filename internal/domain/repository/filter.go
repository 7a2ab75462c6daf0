package repository

// ListFilter parámetros comunes de los listados por empresa.
// Active nil devuelve filas activas e inactivas.
type ListFilter struct {
	Active *bool
	Limit  int
	Offset int
}

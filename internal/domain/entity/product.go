package entity

import "time"

// Product producto ofrecido al cliente con los documentos que exige.
// Eligible es la marca del backend; la contratación final depende también de los documentos.
type Product struct {
	ID           string
	Name         string
	Eligible     bool
	Requirements []DocumentRequirement
}

// DocumentRequirement documento exigido por un producto.
type DocumentRequirement struct {
	Name      string
	Satisfied bool
	ExpiresAt *time.Time
}

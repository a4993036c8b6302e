package entity

type Theater struct {
	Base
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
	Type     string `db:"type"` // standard, 3D, IMAX, VIP
}

package entity

// EventType is immutable reference data; many events reference one type.
type EventType struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
	Icon  string `db:"icon" json:"icon"`
}

package domain

// Driver represents a driver that cargos can be assigned to.
type Driver struct {
	ID       string
	Name     string
	Phone    string
	HomeCity string
}

// DriverFields holds the fields of a driver that is not yet persisted.
type DriverFields struct {
	Name     string
	Phone    string
	HomeCity string
}

// DriverPatch is a partial driver update. Nil fields are left untouched.
// ID is set only on patches echoed back by the persistence layer.
type DriverPatch struct {
	ID       string
	Name     *string
	Phone    *string
	HomeCity *string
}

// IsEmpty reports whether the patch carries no field changes.
func (p DriverPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.HomeCity == nil
}

// Apply returns a copy of d with the non-nil patch fields written over it.
func (p DriverPatch) Apply(d Driver) Driver {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.HomeCity != nil {
		d.HomeCity = *p.HomeCity
	}
	return d
}

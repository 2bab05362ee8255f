package entity

// DepartmentKind controls which record fields a department may expose.
// Simple departments carry plain email/phone/hours; location departments
// may additionally carry address and map data.
type DepartmentKind string

const (
	KindSimple   DepartmentKind = "simple"
	KindLocation DepartmentKind = "location"
)

// SourceDoc identifies which source document a department is loaded from.
type SourceDoc string

const (
	SourceContacts    SourceDoc = "contacts"
	SourceCargo       SourceDoc = "cargo"
	SourceTravelShops SourceDoc = "travel_shops"
)

// Department names
const (
	DeptGDSSupport      = "GDS Support"
	DeptBaggageServices = "Baggage Services"
	DeptAgencySupport   = "Agency Support"
	DeptLetsTalk        = "Let's Talk"
	DeptCargo           = "Cargo"
	DeptTravelShop      = "Travel Shop"
)

// Department is one top-level support category.
type Department struct {
	Name   string         `json:"name"`
	Kind   DepartmentKind `json:"kind"`
	Source SourceDoc      `json:"-"`
}

// IsLocation reports whether records of this department may carry
// address/map data.
func (d Department) IsLocation() bool {
	return d.Kind == KindLocation
}

// departments is the fixed enumerated set, in display order.
var departments = []Department{
	{Name: DeptGDSSupport, Kind: KindSimple, Source: SourceContacts},
	{Name: DeptBaggageServices, Kind: KindSimple, Source: SourceContacts},
	{Name: DeptAgencySupport, Kind: KindSimple, Source: SourceContacts},
	{Name: DeptLetsTalk, Kind: KindSimple, Source: SourceContacts},
	{Name: DeptCargo, Kind: KindLocation, Source: SourceCargo},
	{Name: DeptTravelShop, Kind: KindLocation, Source: SourceTravelShops},
}

// Departments returns the fixed department set in display order.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// DepartmentByName looks up a department by its exact name.
func DepartmentByName(name string) (Department, bool) {
	for _, d := range departments {
		if d.Name == name {
			return d, true
		}
	}
	return Department{}, false
}

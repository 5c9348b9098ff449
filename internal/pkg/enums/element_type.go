package enums

// ElementType represents a player's position in the external schema
// (element_type 1..4).
type ElementType int

const (
	Goalkeeper ElementType = 1
	Defender   ElementType = 2
	Midfielder ElementType = 3
	Forward    ElementType = 4
)

// ElementTypeInfo contains display information about a position.
type ElementTypeInfo struct {
	Name  string
	Short string
}

// GetInfo returns position information.
func (t ElementType) GetInfo() ElementTypeInfo {
	switch t {
	case Goalkeeper:
		return ElementTypeInfo{Name: "Goalkeeper", Short: "GKP"}
	case Defender:
		return ElementTypeInfo{Name: "Defender", Short: "DEF"}
	case Midfielder:
		return ElementTypeInfo{Name: "Midfielder", Short: "MID"}
	case Forward:
		return ElementTypeInfo{Name: "Forward", Short: "FWD"}
	default:
		return ElementTypeInfo{Name: "Unknown", Short: "UNK"}
	}
}

// IsValid reports whether the value is one of the four known positions.
func (t ElementType) IsValid() bool {
	return t >= Goalkeeper && t <= Forward
}

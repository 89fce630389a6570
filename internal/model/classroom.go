package model

// ClassRoom is a bookable room. RoomOwner is the program code holding
// unilateral assignment rights; empty means the room is unowned.
type ClassRoom struct {
	ID         string     `json:"id"`
	RoomID     string     `json:"room_id"` // user-facing id, e.g. "FSIT_301"
	Building   string     `json:"building"`
	Floor      string     `json:"floor"`
	Room       string     `json:"room"`
	RoomType   string     `json:"room_type"` // "Theory", "Lab"
	Capacity   int        `json:"capacity"`
	RoomOwner  string     `json:"room_owner"` // program code or ""
	SharedWith []string   `json:"shared_with,omitempty"`
	TimeSlots  []TimeSlot `json:"time_slots,omitempty"`
}

// RoomText is the display label used in notifications, e.g. "FSIT_301".
func (r *ClassRoom) RoomText() string {
	return r.Building + "_" + r.Room
}

// AuthorityKind classifies what the acting program may do with a room.
type AuthorityKind int

const (
	// AuthorityOwner: the acting program owns the room and writes directly.
	AuthorityOwner AuthorityKind = iota
	// AuthorityShared: another program owns the room; writes go through
	// the request queue.
	AuthorityShared
	// AuthorityUnowned: no program owns the room; writes are direct.
	AuthorityUnowned
)

// RoomAuthority is the authority model of one room relative to one acting
// program, computed once per call so the engine can branch exhaustively.
type RoomAuthority struct {
	Kind       AuthorityKind
	Owner      string   // owner program code, empty for unowned rooms
	SharedWith []string // programs the owner listed for sharing
}

// AuthorityFor classifies the room for a program acting under actingCode.
func (r *ClassRoom) AuthorityFor(actingCode string) RoomAuthority {
	switch {
	case r.RoomOwner == "":
		return RoomAuthority{Kind: AuthorityUnowned}
	case r.RoomOwner == actingCode:
		return RoomAuthority{Kind: AuthorityOwner, Owner: r.RoomOwner, SharedWith: r.SharedWith}
	default:
		return RoomAuthority{Kind: AuthorityShared, Owner: r.RoomOwner, SharedWith: r.SharedWith}
	}
}

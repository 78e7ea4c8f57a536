// internal/core/domain/scan.go
package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Mode is the interpretation context for upcoming barcodes
type Mode string

// Mode constants
const (
	ModeIdle     Mode = "idle"
	ModeRegister Mode = "register"
	ModeAdd      Mode = "add"
	ModeRemove   Mode = "remove"
	ModeOpen     Mode = "open"
	ModeFinish   Mode = "finish"
)

// Scanned control tokens
const (
	TokenIdle       = "???"
	TokenRegister   = "+++"
	TokenAdd        = ">>>"
	TokenRemove     = "<<<"
	TokenOpen       = "///"
	TokenFinish     = "</<"
	TokenCustomItem = "~+~"
)

var modeTokens = map[string]Mode{
	TokenIdle:     ModeIdle,
	TokenRegister: ModeRegister,
	TokenAdd:      ModeAdd,
	TokenRemove:   ModeRemove,
	TokenOpen:     ModeOpen,
	TokenFinish:   ModeFinish,
}

// ParseModeToken returns the mode selected by a scanned token
func ParseModeToken(scan string) (Mode, bool) {
	mode, ok := modeTokens[scan]
	return mode, ok
}

// Token returns the scan literal that selects the mode
func (m Mode) Token() string {
	for token, mode := range modeTokens {
		if mode == m {
			return token
		}
	}
	return ""
}

// IsValid reports whether the mode is known
func (m Mode) IsValid() bool {
	return m.Token() != ""
}

var removalRefPattern = regexp.MustCompile(`^~(\d+)\|(\d+)~$`)

// RemovalRef identifies one stock unit, printed on custom item labels
type RemovalRef struct {
	ItemID int64
	UnitID int64
}

// ParseRemovalRef extracts the item and unit ids from a label code
func ParseRemovalRef(scan string) (RemovalRef, bool) {
	m := removalRefPattern.FindStringSubmatch(scan)
	if m == nil {
		return RemovalRef{}, false
	}
	itemID, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return RemovalRef{}, false
	}
	unitID, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return RemovalRef{}, false
	}
	return RemovalRef{ItemID: itemID, UnitID: unitID}, true
}

// String renders the reference as it is encoded on a label
func (r RemovalRef) String() string {
	return fmt.Sprintf("~%d|%d~", r.ItemID, r.UnitID)
}

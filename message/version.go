package message

import (
	"fmt"
	"strconv"

	"github.com/ghettovoice/rtsp/internal/grammar"
	"github.com/ghettovoice/rtsp/internal/util"
)

// Version identifies the protocol name and version carried on the start
// line, e.g. "RTSP/2.0".
type Version struct {
	Name   string
	Number string
}

// RTSP20 is the only protocol version this module speaks.
var RTSP20 = Version{Name: "RTSP", Number: "2.0"}

func (v Version) String() string { return v.Name + "/" + v.Number }

// Format implements [fmt.Formatter] for custom formatting.
func (v Version) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, v.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(v.String()))
		return
	default:
		type hideMethods Version
		type Version hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Version(v))
		return
	}
}

// Equal returns whether v is equal to another value.
func (v Version) Equal(val any) bool {
	var other Version
	switch o := val.(type) {
	case Version:
		other = o
	case *Version:
		if o == nil {
			return false
		}
		other = *o
	default:
		return false
	}
	return util.EqFold(v.Name, other.Name) && util.EqFold(v.Number, other.Number)
}

// IsValid returns whether both the name and number are well-formed tokens.
func (v Version) IsValid() bool { return grammar.IsToken(v.Name) && grammar.IsToken(v.Number) }

// IsZero returns whether v is the zero Version.
func (v Version) IsZero() bool { return v.Name == "" && v.Number == "" }

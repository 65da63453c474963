package otf

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Name IDs from https://docs.microsoft.com/en-us/typography/opentype/spec/name#name-ids
const (
	NameFamily   uint16 = 1
	NameFullName uint16 = 4
)

// Name returns a string from table 'name', or "" if the font does not carry
// a decodable entry for id. Windows and Unicode platform entries are
// preferred over Macintosh ones.
func (otf *Font) Name(id uint16) string {
	t := otf.Table(T("name"))
	if t == nil {
		return ""
	}
	b := t.data
	count, err := b.u16(2)
	if err != nil {
		return ""
	}
	storage, _ := b.u16(4)
	var fallback string
	for i := 0; i < int(count); i++ {
		rec, err := b.view(6+12*i, 12)
		if err != nil {
			break
		}
		pid, psid, nid := u16(rec), u16(rec[2:]), u16(rec[6:])
		if nid != id {
			continue
		}
		length, offset := u16(rec[8:]), u16(rec[10:])
		raw, err := b.view(int(storage)+int(offset), int(length))
		if err != nil {
			continue
		}
		dec := nameDecoder(pid, psid)
		if dec == nil {
			continue
		}
		s, err := dec.Bytes(raw)
		if err != nil {
			continue
		}
		if pid == pidMacintosh {
			if fallback == "" {
				fallback = string(s)
			}
			continue
		}
		return string(s)
	}
	return fallback
}

// FullName is the font's full name, falling back to the family name.
func (otf *Font) FullName() string {
	if n := otf.Name(NameFullName); n != "" {
		return n
	}
	return otf.Name(NameFamily)
}

func nameDecoder(pid, psid uint16) *encoding.Decoder {
	switch pid {
	case pidUnicode, pidWindows:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case pidMacintosh:
		if psid == psidMacintoshRoman {
			return charmap.Macintosh.NewDecoder()
		}
	}
	return nil
}

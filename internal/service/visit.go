package service

const unknown = "unknown"

// Visit describes the requester of a resolution
type Visit struct {
	IP        string
	UserAgent string
	Referer   string
}

func (v Visit) withDefaults() Visit {
	if v.IP == "" {
		v.IP = unknown
	}
	if v.UserAgent == "" {
		v.UserAgent = unknown
	}
	if v.Referer == "" {
		v.Referer = unknown
	}
	return v
}

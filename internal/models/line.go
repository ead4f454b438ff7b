package models

import "time"

// Line is one raw line received from the FSD server, without its terminator
type Line struct {
	ReceivedAt time.Time
	Raw        string
}

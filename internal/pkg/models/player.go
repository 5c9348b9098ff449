package models

import (
	"strconv"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/enums"
)

// Player is one element of the season. Price is in tenths of a million, as
// delivered by the source.
type Player struct {
	ID          int               `json:"id"`
	Code        int               `json:"code"`
	ElementType enums.ElementType `json:"elementType"`
	TeamID      int               `json:"teamId"`
	WebName     string            `json:"webName"`
	FirstName   string            `json:"firstName"`
	SecondName  string            `json:"secondName"`
	Price       int               `json:"price"`
	StartPrice  int               `json:"startPrice"`
}

func (p Player) CacheID() string {
	return strconv.Itoa(p.ID)
}

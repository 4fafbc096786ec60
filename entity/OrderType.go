package entity

type OrderType string

const (
	DineIn   OrderType = "DineIn"
	TakeAway OrderType = "TakeAway"
)

func (t OrderType) Valid() bool {
	return t == DineIn || t == TakeAway
}

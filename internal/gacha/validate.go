package gacha

func validateCost(cost int64) error {
	if cost < 0 {
		return ErrInvalidCost
	}
	return nil
}

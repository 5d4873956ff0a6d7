package term

func (v Level) Red(s string) string {
	switch v {
	case Level16M:
		// #f43b47
		return "\x1b[38;2;244;59;71m" + s + "\x1b[0m"
	case Level256:
		return "\x1b[31m" + s + "\x1b[0m"
	default:
	}
	return s
}

func (v Level) Green(s string) string {
	switch v {
	case Level16M:
		// #43e97a
		return "\x1b[38;2;67;233;123m" + s + "\x1b[0m"
	case Level256:
		return "\x1b[32m" + s + "\x1b[0m"
	default:
	}
	return s
}

func (v Level) Yellow(s string) string {
	switch v {
	case Level16M:
		// #fee240
		return "\x1b[38;2;254;225;64m" + s + "\x1b[0m"
	case Level256:
		return "\x1b[33m" + s + "\x1b[0m"
	default:
	}
	return s
}

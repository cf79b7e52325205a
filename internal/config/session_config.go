package config

import "time"

type SessionConfig interface {
	GetMaxSessionAge() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetMaxSessionAge() time.Duration {
	return 12 * time.Hour
}

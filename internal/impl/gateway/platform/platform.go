package gateway_platform

import (
	"time"

	"github.com/google/uuid"
)

type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewUUID() uuid.UUID { return uuid.New() }

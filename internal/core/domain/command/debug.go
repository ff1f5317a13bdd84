package command

import (
	"ciesta/internal/core/domain"
	"ciesta/internal/core/port"
	"ciesta/internal/core/service"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"

	"github.com/rs/zerolog/log"
)

// Debug reports runtime and registry diagnostics to an owner.
type Debug struct {
	meta
	registry   service.Registry
	textSender port.TextSender
	started    time.Time
}

func NewDebug(registry service.Registry, textSender port.TextSender, started time.Time, command string) *Debug {
	return &Debug{
		meta:       meta{command: command, level: domain.LevelOwner},
		registry:   registry,
		textSender: textSender,
		started:    started,
	}
}

const kb = 1024
const debugTemplate = `uptime: %s
users: %d (premium: %d, owners: %d)
allocated mem: %d KB
goroutines: %d
heap: %d KB
stack: %d KB
compiled with %s for %s-%s
`

func (d *Debug) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", d.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data := []metrics.Sample{
		{Name: "/memory/classes/heap/objects:bytes"},
		{Name: "/memory/classes/heap/stacks:bytes"},
		{Name: "/memory/classes/total:bytes"},
	}
	metrics.Read(data)

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	users := d.registry.ListAll()
	counts := make(map[domain.Role]int, 3)
	for _, u := range users {
		counts[u.Role]++
	}

	return reply(ctx, d.textSender, message, fmt.Sprintf(
		debugTemplate,
		time.Since(d.started).Truncate(time.Second),
		len(users), counts[domain.RolePremium], counts[domain.RoleOwner],
		sampleValue(data[2])/kb,
		runtime.NumGoroutine(),
		sampleValue(data[0])/kb,
		sampleValue(data[1])/kb,
		runtime.Version(), goos, goarch,
	))
}

func sampleValue(s metrics.Sample) uint64 {
	if s.Value.Kind() != metrics.KindUint64 {
		return 0
	}

	return s.Value.Uint64()
}

package display

import (
	"io"

	"github.com/rs/zerolog"

	"elevbank/src/types"
	"elevbank/src/utils"
)

const timeFormat = "15:04:05.000"

// Console prints car events and status summaries for a human watching the bank.
type Console struct {
	log zerolog.Logger
}

func NewConsole(out io.Writer, bankName string, noColor bool) *Console {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
		NoColor:    noColor,
	}
	return &Console{
		log: zerolog.New(output).With().Timestamp().Str("bank", bankName).Logger(),
	}
}

func (c *Console) OnStatus(event types.StatusEvent) {
	c.log.Info().
		Int("car", event.CarID).
		Int("floor", event.Floor).
		Stringer("direction", event.Direction).
		Stringer("event", event.Kind).
		Msg(utils.FormatEvent(event))
}

// Summary prints one line per car.
func (c *Console) Summary(statuses []types.CarStatus) {
	for _, status := range statuses {
		c.log.Info().
			Int("car", status.ID).
			Int("floor", status.Floor).
			Stringer("direction", status.Direction).
			Ints("up", status.Up).
			Ints("down", status.Down).
			Msg("Status")
	}
}

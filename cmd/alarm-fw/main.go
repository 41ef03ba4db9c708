//go:build rp2040

package main

import (
	"context"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"buzzalarm-go/services/alarm"
	"buzzalarm-go/services/alarm/platform"
	"buzzalarm-go/services/alarm/tickflag"
	"buzzalarm-go/services/alarm/trace"
)

func main() {
	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       uartx.UART0_TX_PIN,
		RX:       uartx.UART0_RX_PIN,
	})
	_, _ = console.Write([]byte("[alarm] boot\n"))

	flag := tickflag.New()
	pins := platform.DefaultPins()
	p, err := platform.NewRP2(pins, flag)
	if err != nil {
		_, _ = console.Write([]byte("[alarm] FAIL: " + err.Error() + "\n"))
		blink(pins.LEDs[0])
	}

	_ = alarm.Run(context.Background(), p, alarm.WithObserver(trace.New(console)))
}

// blink signals a bring-up failure forever.
func blink(led machine.Pin) {
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(400 * time.Millisecond)
	}
}

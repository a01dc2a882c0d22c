// Command stun-dump decodes a base64 or hex STUN/TURN message and prints
// its type, transaction ID and attributes.
package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/netwrx/stunice"
)

func decodeBuf(raw string, isHex bool) ([]byte, error) {
	if isHex {
		return hex.DecodeString(raw)
	}
	return base64.StdEncoding.DecodeString(raw)
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	app := &cli.App{
		Name:  "stun-dump",
		Usage: "decode and print a STUN/TURN message",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug output"},
			&cli.BoolFlag{Name: "hex", Usage: "input is hex instead of base64"},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Required: true, Usage: "the encoded message"},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("debug") {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			raw, err := decodeBuf(c.String("message"), c.Bool("hex"))
			if err != nil {
				return fmt.Errorf("decode input: %w", err)
			}
			log.Debugf("decoding %d bytes", len(raw))

			msg, err := stun.DecodeMessage(raw)
			if err != nil {
				return fmt.Errorf("decode message: %w", err)
			}

			fmt.Println(msg)
			for _, a := range msg.Attributes() {
				fmt.Printf("  %s\n", a.Type())
			}
			for _, t := range msg.UnknownAttributes {
				log.Warnf("unrecognized comprehension-required attribute %s", t)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Run reads commands from in and writes replies to out until the user
// leaves, the input ends or ctx is cancelled. The book is saved in every
// case. Only a failure to read the input is returned.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan inputLine)
	errc := make(chan error, config.ChannelBufferSize)

	// The reader blocks on in, so it lives in its own goroutine and the
	// loop below can still react to ctx.
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			text, err := readLine(reader, config.MaxCommandLineSize)
			if err != nil && !errors.Is(err, ErrLineTooLong) {
				if !errors.Is(err, io.EOF) {
					errc <- err
				}
				return
			}
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	log := slog.With(config.LogKeyComponent, config.CompCLI)

	fmt.Fprintln(out, a.GetMsg(config.TKeyWelcome, nil))
	for {
		fmt.Fprint(out, a.GetMsg(config.TKeyPrompt, nil))

		select {
		case <-ctx.Done():
			log.Info(config.MsgCtxCancel)
			fmt.Fprintln(out)
			fmt.Fprintln(out, a.shutdown())
			return nil

		case line, ok := <-lines:
			if !ok {
				log.Info(config.MsgInputClosed)
				fmt.Fprintln(out)
				fmt.Fprintln(out, a.shutdown())
				// errc is filled before lines is closed, unless the
				// reader stopped on cancellation.
				select {
				case err := <-errc:
					if err != nil {
						return fmt.Errorf("%s: %w", config.ErrInputRead, err)
					}
				default:
				}
				return nil
			}

			if line.err != nil {
				log.Warn(config.ErrLineTooLong, config.LogKeyError, line.err)
				fmt.Fprintln(out, a.renderError(line.err))
				continue
			}

			reply, quit := a.Handle(ctx, line.text)
			if reply != "" {
				fmt.Fprintln(out, reply)
			}
			if quit {
				return nil
			}
		}
	}
}

// inputLine is one line of input, or the reason it was rejected.
type inputLine struct {
	text string
	err  error
}

// readLine returns the next line without its terminator. A line longer than
// limit bytes is consumed entirely and reported as ErrLineTooLong, so the
// reader stays positioned at the start of the following line.
func readLine(r *bufio.Reader, limit int) (string, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, more, err := r.ReadLine()
		if err != nil {
			return "", err
		}
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !more {
			break
		}
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return string(line), nil
}

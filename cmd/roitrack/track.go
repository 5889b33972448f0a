package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	roitrack "github.com/swdee/go-roitrack"
	"gocv.io/x/gocv"
)

// defaultFPS is used for the saved video when the input has no frame rate
const defaultFPS = 30

var (
	trackVideo   string
	trackRegions string
	trackOutput  string
	trackSave    string
	trackFPS     float64
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track regions through a video without a window",
	Long: `Track regions through a video without a window.

Regions are given in display space as a JSON array, eg:
  --regions '[[100,100,200,200],{"x1":300,"y1":200,"x2":400,"y2":300}]'

The video plays once from the start and the box of every region is written
per frame as a line of JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runTrack(cmd.Context(), cmd.Flags().Changed("fps"))
	},
}

func init() {
	trackCmd.Flags().StringVarP(&trackVideo, "video", "i", "", "Path to input video")
	trackCmd.Flags().StringVarP(&trackRegions, "regions", "r", "", "JSON array of regions to track in display coordinates")
	trackCmd.Flags().StringVarP(&trackOutput, "output", "o", "-", "File to write JSON lines to, - for stdout")
	trackCmd.Flags().StringVar(&trackSave, "save", "", "Optional path to save the annotated display frames as video")
	trackCmd.Flags().Float64Var(&trackFPS, "fps", defaultFPS, "Frame rate of the saved video (default: the input video frame rate)")

	trackCmd.MarkFlagRequired("video")
	trackCmd.MarkFlagRequired("regions")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(ctx context.Context, fpsSet bool) error {

	drags, err := parseRegions(trackRegions)

	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(trackOutput)

	if err != nil {
		return err
	}

	defer closeOut()

	sess, err := roitrack.NewSession(cfg, nil, nil)

	if err != nil {
		return err
	}

	defer sess.Close()

	log := logrus.WithField("session", sess.ID())

	if err := sess.LoadVideo(trackVideo); err != nil {
		return err
	}

	for _, d := range drags {
		if err := sess.DrawRegion(d.From, d.To); err != nil {
			log.WithError(err).WithField("region", d.String()).Warn("region skipped")
		}
	}

	if len(sess.Regions()) == 0 {
		return errors.New("none of the regions could be used")
	}

	var writer *gocv.VideoWriter

	if trackSave != "" {
		fps := saveFPS(fpsSet, trackFPS, sess.Snapshot().FPS)

		writer, err = gocv.VideoWriterFile(trackSave, "MJPG", fps,
			cfg.Display.Width, cfg.Display.Height, true)

		if err != nil {
			return errors.Wrapf(err, "error creating video %s", trackSave)
		}

		defer writer.Close()
	}

	bar := progressbar.NewOptions(sess.Snapshot().Frames,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Tracking"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	frame := gocv.NewMat()
	defer frame.Close()

	sess.TogglePlay()
	frames := 0

	for sess.State() == roitrack.Playing {

		if err := ctx.Err(); err != nil {
			return err
		}

		sess.Tick(&frame)

		// the tick that reaches the end of the video pauses playback
		if sess.State() != roitrack.Playing {
			break
		}

		line, err := resultLine(sess.Snapshot().FrameNum, sess.Results())

		if err != nil {
			return errors.Wrap(err, "error encoding results")
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return errors.Wrap(err, "error writing results")
		}

		if writer != nil {
			if err := writer.Write(frame); err != nil {
				return errors.Wrap(err, "error writing video frame")
			}
		}

		frames++
		_ = bar.Add(1)
	}

	_ = bar.Finish()

	log.WithFields(logrus.Fields{
		"frames":  frames,
		"regions": len(sess.Regions()),
	}).Info("tracking complete")

	return nil
}

// saveFPS picks the frame rate of the saved video, the flag wins when set
// otherwise the rate of the input video is kept
func saveFPS(flagSet bool, flagFPS, sourceFPS float64) float64 {

	if flagSet && flagFPS > 0 {
		return flagFPS
	}

	if sourceFPS > 0 {
		return sourceFPS
	}

	return defaultFPS
}

// openOutput opens the JSON lines destination, "-" being stdout
func openOutput(path string) (io.Writer, func(), error) {

	if path == "" || path == "-" {
		w := bufio.NewWriter(os.Stdout)
		return w, func() { w.Flush() }, nil
	}

	f, err := os.Create(path)

	if err != nil {
		return nil, nil, errors.Wrapf(err, "error creating output %s", path)
	}

	w := bufio.NewWriter(f)

	return w, func() {
		w.Flush()
		f.Close()
	}, nil
}

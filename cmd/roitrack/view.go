package main

import (
	"bufio"
	"context"
	"image"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	roitrack "github.com/swdee/go-roitrack"
	"gocv.io/x/gocv"
)

// key codes returned by WaitKey
const (
	keyEsc   = 27
	keySpace = 32
)

// errQuit is returned by the window when the user asks to exit
var errQuit = errors.New("quit requested")

var viewCmd = &cobra.Command{
	Use:   "view [video]",
	Short: "Open a video in an interactive tracking window",
	Long: `Open a video in an interactive tracking window.

Keys:
  space  play or pause, starts tracking the drawn regions
  d      draw a region by dragging a box, confirm with enter
  c      clear the last drawn region
  x      remove regions under the center of a small selection
  o      reload the current video
  q/esc  quit

Type the path of another video on the terminal and press enter to load it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runView(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(ctx context.Context, video string) error {

	sess, err := roitrack.NewSession(cfg, nil, nil)

	if err != nil {
		return err
	}

	defer sess.Close()

	log := logrus.WithField("session", sess.ID())

	if err := sess.LoadVideo(video); err != nil {
		return err
	}

	win := newWindow("roitrack", sess, cfg.Display)
	defer win.Close()

	go watchPaths(ctx, os.Stdin, sess.Submit)

	log.WithField("video", video).Info("press d to draw a region, space to start tracking")

	err = sess.Run(ctx, win)

	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// window is a gocv highgui Display that turns key presses into session
// commands
type window struct {
	win  *gocv.Window
	sess *roitrack.Session
	// last is the display frame most recently shown, used as the backdrop
	// for selections
	last gocv.Mat
}

func newWindow(name string, sess *roitrack.Session, size roitrack.Extent) *window {

	win := gocv.NewWindow(name)
	win.ResizeWindow(size.Width, size.Height)

	return &window{
		win:  win,
		sess: sess,
		last: gocv.NewMat(),
	}
}

// Show presents the display frame and handles any key pressed since the
// previous frame
func (w *window) Show(img gocv.Mat) error {

	img.CopyTo(&w.last)

	w.win.IMShow(img)

	if !w.win.IsOpen() {
		return errQuit
	}

	return w.handleKey(w.win.WaitKey(1))
}

func (w *window) handleKey(key int) error {

	if key < 0 {
		return nil
	}

	var cmd roitrack.Command

	switch key & 0xff {
	case 'q', keyEsc:
		return errQuit

	case keySpace:
		cmd = roitrack.ToggleCommand{}

	case 'd':
		sel := w.selectBox()

		if sel.Empty() {
			return nil
		}

		cmd = roitrack.DrawCommand{From: sel.Min, To: sel.Max}

	case 'x':
		sel := w.selectBox()

		if sel.Empty() {
			return nil
		}

		cmd = roitrack.RemoveAtCommand{At: center(sel)}

	case 'c':
		cmd = roitrack.RemoveLastCommand{}

	case 'o':
		cmd = roitrack.LoadCommand{Path: w.sess.Snapshot().Video}

	default:
		return nil
	}

	w.sess.Submit(cmd)

	return nil
}

// selectBox blocks while the user drags a box over the last frame.  The box
// is in display space.
func (w *window) selectBox() image.Rectangle {

	if w.last.Empty() {
		return image.Rectangle{}
	}

	return w.win.SelectROI(w.last)
}

// watchPaths queues a load of every non blank line read from r until r is
// exhausted or ctx is cancelled
func watchPaths(ctx context.Context, r io.Reader, submit func(roitrack.Command) bool) {

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {

		if ctx.Err() != nil {
			return
		}

		path := strings.TrimSpace(scanner.Text())

		if path == "" {
			continue
		}

		if !submit(roitrack.LoadCommand{Path: path}) {
			logrus.WithField("video", path).Warn("load request dropped")
		}
	}
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Close the window
func (w *window) Close() error {
	w.last.Close()
	return w.win.Close()
}

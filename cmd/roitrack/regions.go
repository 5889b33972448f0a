package main

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
	"github.com/swdee/go-roitrack/tracker"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// drag is a region drawn in display space between two corners
type drag struct {
	From image.Point
	To   image.Point
}

// parseRegions reads a JSON array of display space drags.  Each drag is
// either an array [x1, y1, x2, y2] or an object {"x1":..,"y1":..,"x2":..,"y2":..}.
func parseRegions(data string) ([]drag, error) {

	if !gjson.Valid(data) {
		return nil, errors.New("regions are not valid JSON")
	}

	list := gjson.Parse(data)

	if !list.IsArray() {
		return nil, errors.New("regions must be a JSON array")
	}

	var (
		drags []drag
		err   error
	)

	list.ForEach(func(key, value gjson.Result) bool {

		var coords []gjson.Result

		switch {
		case value.IsArray():
			coords = value.Array()
		case value.IsObject():
			coords = value.Get("[x1,y1,x2,y2]").Array()
		}

		if len(coords) != 4 {
			err = errors.Errorf("region %d: expected four coordinates, got %s", key.Int(), value.Raw)
			return false
		}

		for _, c := range coords {
			if c.Type != gjson.Number {
				err = errors.Errorf("region %d: coordinate %q is not a number", key.Int(), c.Raw)
				return false
			}
		}

		drags = append(drags, drag{
			From: image.Pt(int(coords[0].Int()), int(coords[1].Int())),
			To:   image.Pt(int(coords[2].Int()), int(coords[3].Int())),
		})

		return true
	})

	if err != nil {
		return nil, err
	}

	if len(drags) == 0 {
		return nil, errors.New("no regions given")
	}

	return drags, nil
}

// resultLine renders the tracker results of one frame as a single line of
// JSON
func resultLine(frame int, results []tracker.Result) (string, error) {

	line, err := sjson.Set("", "frame", frame)

	if err != nil {
		return "", err
	}

	line, err = sjson.SetRaw(line, "boxes", "[]")

	if err != nil {
		return "", err
	}

	for _, res := range results {

		box := ""
		fields := []struct {
			path  string
			value interface{}
		}{
			{"index", res.Index},
			{"x", res.Box.X},
			{"y", res.Box.Y},
			{"width", res.Box.Width},
			{"height", res.Box.Height},
			{"lost", res.Lost},
		}

		for _, f := range fields {
			if box, err = sjson.Set(box, f.path, f.value); err != nil {
				return "", errors.Wrapf(err, "box %d", res.Index)
			}
		}

		if line, err = sjson.SetRaw(line, "boxes.-1", box); err != nil {
			return "", errors.Wrapf(err, "box %d", res.Index)
		}
	}

	return line, nil
}

func (d drag) String() string {
	return fmt.Sprintf("%v-%v", d.From, d.To)
}

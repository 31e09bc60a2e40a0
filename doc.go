/*
Package rice renders a system information dashboard in the terminal: a block
of "Label: value" lines printed beside either ASCII art or an inline image.

Images are drawn with the graphics protocol of the attached terminal (Kitty or
iTerm2), wrapped in the tmux passthrough envelope when running inside tmux.
When no protocol is available, or the image cannot be decoded or encoded, the
render silently falls back to builtin ASCII art.

Basic Usage:

	fields := rice.BuildFields(cfg.Fields, provider, rice.FieldOptions{})
	res, err := rice.Render(os.Stdout, fields, rice.Options{
	    ImagePath: "logo.png",
	})
	if err != nil {
	    log.Fatal(err) // only output errors are returned
	}
	if res.Fallback != nil {
	    log.Debugf("image skipped: %v", res.Fallback)
	}

Protocol Detection:

	env := rice.DetectEnvironment(os.LookupEnv, "")
	switch env.Protocol {
	case rice.Kitty:
	    fmt.Println("Kitty graphics protocol supported")
	case rice.ITerm2:
	    fmt.Println("iTerm2 inline images supported")
	case rice.None:
	    fmt.Println("ASCII only")
	}

Layout:

Raster art always occupies a fixed 30x15 cell box; ASCII art occupies its
widest visible line by its line count. Info lines start at the column right of
the art plus a gap, and lines that do not fit beside the art continue below it
at the same column.
*/
package rice

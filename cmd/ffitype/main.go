package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ffi-types/alloc"
	"github.com/wippyai/ffi-types/ctype"
	"github.com/wippyai/ffi-types/descriptor"
	"github.com/wippyai/ffi-types/typespec"
)

var errUsage = errors.New("no action given")

func main() {
	if err := run(); err != nil {
		if err == errUsage {
			fmt.Fprintln(os.Stderr, "Usage: ffitype -type '<signature>' [-stress N] [-v]")
			fmt.Fprintln(os.Stderr, "       ffitype -list '<type>, <type>, ...'")
			fmt.Fprintln(os.Stderr, "       ffitype -scalars")
			fmt.Fprintln(os.Stderr, "       ffitype -i  (interactive mode)")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred logger flushes happen.
func run() error {
	var (
		sig         = flag.String("type", "", "Type signature, e.g. '{i64, {u8, pointer}, f64}'")
		list        = flag.String("list", "", "Comma-separated argument list, e.g. 'pointer, i32, {f64, f64}'")
		stress      = flag.Int("stress", 0, "Clone and free the type N times under a tracking allocator")
		scalars     = flag.Bool("scalars", false, "List scalar type names and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log allocator and descriptor activity")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		descriptor.SetLogger(logger)
		ctype.SetLogger(logger)
		alloc.SetLogger(logger)
	}

	th := newTheme(term.IsTerminal(int(os.Stdout.Fd())))

	switch {
	case *interactive:
		return runInteractive()
	case *scalars:
		printScalars(th)
		return nil
	case *list != "":
		return showList(th, *list)
	case *sig != "" && *stress > 0:
		return runStress(th, *sig, *stress)
	case *sig != "":
		return showType(th, *sig)
	default:
		return errUsage
	}
}

func printScalars(th theme) {
	for _, name := range typespec.ScalarNames() {
		t, _ := typespec.Parse(name)
		fmt.Println(th.renderNode(t.Descriptor(), -1, false))
	}
}

func showType(th theme, sig string) error {
	t, err := typespec.Parse(sig)
	if err != nil {
		return err
	}
	defer t.Free()

	fmt.Println(th.title.Render(typespec.Format(t.Descriptor())))
	fmt.Print(th.renderTree(t.Descriptor(), t.Owned()))
	return nil
}

func showList(th theme, sig string) error {
	args, err := typespec.ParseList(sig)
	if err != nil {
		return err
	}
	defer args.Free()

	fmt.Println(th.title.Render(fmt.Sprintf("%d argument(s)", args.Len())))
	for i, e := range args.Elements() {
		fmt.Printf("arg%d ", i)
		fmt.Print(th.renderTree(e, e.IsStruct()))
	}
	return nil
}

// runStress clones and frees the parsed type n times through a tracking
// allocator and reports its counters.
func runStress(th theme, sig string, n int) error {
	tracker := alloc.NewTracking(alloc.CHeap{}, alloc.WithPoison(0xDD))
	ctype.SetAllocator(tracker)
	defer ctype.SetAllocator(nil)

	t, err := typespec.Parse(sig)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		c := t.Clone()
		c.Free()
	}
	t.Free()

	s := tracker.Stats()
	fmt.Println(th.title.Render(fmt.Sprintf("%d clone/free cycles of %s", n, sig)))
	fmt.Printf("allocs:     %d\n", s.Allocs)
	fmt.Printf("frees:      %d\n", s.Frees)
	fmt.Printf("peak live:  %d\n", s.PeakLive)
	fmt.Printf("live:       %d (%d bytes)\n", s.Live, s.LiveBytes)
	fmt.Printf("faults:     %d\n", s.Faults)

	if err := tracker.Check(); err != nil {
		return err
	}
	fmt.Println(th.ok.Render("no leaks, no faults"))
	return nil
}

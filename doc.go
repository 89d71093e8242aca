// Package arc builds compressed archives from trees of files and
// directories.
//
// Source trees can live on the real filesystem, on any [afero.Fs], or be
// assembled entirely in memory. A [Builder] flattens queued directories
// into archive-relative entry names, streams each file into the archive
// container in fixed-size chunks, and reports byte-level progress after
// every chunk. When opening a file fails, a registered [FailureFunc]
// decides per attempt whether to abort the build, skip the file, or retry.
//
// # Quick Start
//
// Archive a directory into a zip file:
//
//	b := arc.NewBuilder()
//	dir, err := arc.NewOSDir("./site")
//	if err != nil {
//	    return err
//	}
//	if err := b.AddDirectory(dir); err != nil {
//	    return err
//	}
//	a, err := b.Build(ctx, "site.zip",
//	    arc.BuildWithProgress(func(p arc.Progress) {
//	        fmt.Printf("\r%s %d", p.Path, p.TotalBytes)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	return a.Close()
//
// The destination file only appears once the returned [Archive] is closed;
// failed or aborted builds leave nothing behind.
//
// # Recovery
//
// Skip unreadable files instead of failing the build:
//
//	a, err := b.Build(ctx, "site.zip",
//	    arc.BuildWithOnFailure(func(f arc.Failure) arc.RecoveryAction {
//	        if f.Attempt < 3 {
//	            return arc.ActionRetry
//	        }
//	        return arc.ActionIgnore
//	    }),
//	)
package arc

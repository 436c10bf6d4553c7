// Package shelf is the composition root of the shelf personal library.
//
// A library is a directory tree: every file is classified by extension into a
// category and filed under <Category>/<Year>/<name>. Each change made through
// the library (add, rename, remove, organize) is recorded as one git commit
// staging exactly the paths it touched.
//
// Usage:
//
//	lib, err := shelf.New(ctx, "./library",
//		shelf.WithLogger(logger),
//		shelf.WithPush(true),
//	)
//
//	entry, res, err := lib.Service.Add(ctx, "/tmp/report.pdf", shelf.ConflictReject)
//	report, res, err := lib.Service.Organize(ctx)
package shelf

// Package mailmerge renders postal addresses onto envelope-sized PDF pages
// using headless Chrome.
//
// # Quick Start
//
// Decode the sender and recipients, build a job, convert, and write:
//
//	sender, err := mailmerge.DecodeAddress(senderJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	recipients, err := mailmerge.DecodeAddresses(listJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv, err := mailmerge.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	job := mailmerge.NewJob(sender, recipients)
//	result, err := conv.Convert(ctx, job)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mailmerge.WritePDF(job.Output, result.PDF); err != nil {
//	    log.Fatal(err)
//	}
//
// Each recipient gets its own page, in input order, carrying the sender's
// return address. Pages default to 162mm x 114mm (C6 envelope), landscape.
// The result also holds the rendered HTML (result.HTML); set Job.HTMLOnly
// to skip PDF generation.
//
// # Configuration
//
//	conv, err := mailmerge.NewConverter(
//	    mailmerge.WithTimeout(2 * time.Minute),
//	    mailmerge.WithEngine(mailmerge.EngineChromedp),
//	    mailmerge.WithStyle("plain"),
//	    mailmerge.WithTemplate("postcard"),
//	)
//
// # Custom Assets
//
//	loader, err := mailmerge.NewAssetLoader("/path/to/assets")
//	conv, err := mailmerge.NewConverter(mailmerge.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom.html
//
// Templates receive .PageCSS, .StyleCSS, .Sender and .Recipients; see the
// built-in envelope template for the field names.
//
// # Concurrency
//
// A Converter is not safe for concurrent use. To merge several lists in
// parallel, share a ConverterPool:
//
//	pool := mailmerge.NewConverterPool(mailmerge.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Engines
//
// Two engines print the HTML: go-rod (EngineRod, default) and chromedp
// (EngineChromedp). Both honor ROD_BROWSER_BIN for the Chrome binary and
// ROD_NO_SANDBOX=1 for containers.
//
// # Errors
//
// Errors wrap sentinel values (ErrDecode, ErrNoAddresses, ErrBrowserConnect,
// ErrWritePDF, ...) and can be matched with errors.Is.
package mailmerge

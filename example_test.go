package mailmerge_test

import (
	"context"
	"fmt"
	"strings"

	mailmerge "github.com/alnah/go-mailmerge"
)

// Example renders two envelopes to HTML.
// For PDF output, leave HTMLOnly false (requires Chrome).
func Example() {
	sender, err := mailmerge.DecodeAddress([]byte(`{
		"name": "ACME Corp", "address_1": "1 Road", "city": "Town",
		"post_code": "12345", "country": "USA"}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	recipients, err := mailmerge.DecodeAddresses([]byte(`[
		{"name": "Jane Doe", "address_1": "10 High St", "city": "London",
		 "post_code": "SW1A 1AA", "country": "UK"},
		{"name": "John Roe", "address_1": "1600 Amphitheatre Pkwy",
		 "city": "Mountain View", "state": "CA", "post_code": "94043", "country": "USA"}
	]`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	conv, err := mailmerge.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	job := mailmerge.NewJob(sender, recipients)
	job.HTMLOnly = true // Skip PDF generation for this example

	result, err := conv.Convert(context.Background(), job)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	html := string(result.HTML)
	fmt.Println(strings.Index(html, "Jane Doe") < strings.Index(html, "John Roe"))
	fmt.Println(strings.Contains(html, "size: 162mm 114mm"))
	// Output:
	// true
	// true
}

// Example_pageSize sets a DL envelope, given portrait; pages still print
// landscape.
func Example_pageSize() {
	job := mailmerge.NewJob(mailmerge.Address{}, nil)
	job.Width, job.Height = 110, 220

	fmt.Println(job.PageSize())
	// Output: 220mm 110mm
}

// Example_pool shares converters between concurrent merges.
func Example_pool() {
	pool := mailmerge.NewConverterPool(mailmerge.ResolvePoolSize(2))
	defer pool.Close()

	conv, err := pool.Acquire()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer pool.Release(conv)

	fmt.Println(pool.Size())
	// Output: 2
}

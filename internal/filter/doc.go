// Package filter applies named product specifications to batches of candidates.
//
// A Filter owns a registry of specifications keyed by name. Each request names
// one specification and carries the candidates to evaluate. Matches are
// returned in their original order; a candidate whose predicate panics is
// reported as skipped rather than failing the whole batch.
//
// Example:
//
//	f := filter.New(catalog.Specs(200_000), template.DefaultReport, logger)
//
//	result, err := f.Apply(ctx, &filter.Request{
//	    Spec:     catalog.SpecOriginalAndHighPrice,
//	    Products: catalog.Sample(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary) // is-original-and-high-price: 1 of 4 products matched (파이리)
package filter

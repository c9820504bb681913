// Command stockpick browses a product catalog and lists the product bundles
// whose summed unit price fits under a price limit.
package main

// Package retrieval ranks stored chunks against a query embedding. On top of
// plain similarity search it layers two selection mechanisms: relevance
// tiering, which buckets candidates relative to the best score so that
// loosely-related stores still return something and tightly-clustered ones
// do not flood, and the semantic firewall, which caps how many chunks one
// source document may contribute so a single long document cannot crowd out
// every other relevant source.
package retrieval

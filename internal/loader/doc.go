// Package loader fetches a dataset and turns it into a Snapshot.
//
// A Source yields the raw dataset: a local file (FileSource), an HTTP(S)
// document (HTTPSource) or the SQLite dataset store (StoreSource). NewSource
// picks one from a location string. The Loader decodes it with the codec for
// its format, builds the canonical graph and extracts the facet lists once per
// load. Malformed records are logged once per load with their count.
package loader

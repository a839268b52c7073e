// Package urlcast turns web pages into readable, streamable and listenable
// content. It fetches a page, extracts its main text as a small
// heading-aware markdown document, re-emits that document as a stream of
// word and break events for progressive rendering, and publishes spoken
// versions of it to an RSS podcast feed.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, openai/).
package urlcast

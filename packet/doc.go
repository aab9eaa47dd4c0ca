// Package packet models the response envelope returned by every endpoint of
// the stats service and the cache-expiry rule derived from it.
//
// A Packet is decoded from the wire as one flat struct so that malformed or
// partial responses never fail to decode. It is narrowed at the boundary into
// a SuccessPacket, an ErrorPacket, or (via Resolve) a closed Outcome union.
// Downstream code branches on the outcome, never on optional-field presence.
//
// CacheExpiration computes the time-to-live of a cached *Packet from the
// cache metadata the service embeds in successful responses.
package packet

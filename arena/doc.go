package arena

/*

# Fixed record arena

An Arena stores records of a single type in one growable slice and hands out
Ref handles instead of pointers. Allocation and release are O(1): released
slots are threaded onto a free list and reused by the next Alloc.

Every slot carries a generation. Free bumps it, so a Ref taken before the
release no longer matches the slot and is reported as stale by Valid and
rejected (panic) by Get. The zero Ref is NoRef because generations start at 1.

Pointers returned by Get are only good until the next Alloc, which may grow
the backing slice. Callers that allocate while holding a pointer must re-fetch
it.

The arena is not safe for concurrent use.

*/

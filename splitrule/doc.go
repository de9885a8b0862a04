package splitrule

/*

# Split rules

A Rule decides where a leaf is cut when a tree is refined. It is given the
points of the leaf, the bound of the leaf's cell and the depth of the leaf,
and returns an axis and a position along it. Points with a coordinate below
the position go left, the rest go right.

Unless stated otherwise a rule cuts the axis along which the cell bound is
longest.

	Midpoint         halves the cell, ignoring the points
	SlidingMidpoint  halves the cell, then slides the plane onto the nearest
	                 point if every point fell on one side
	SlidingMidpoint2 as SlidingMidpoint, and when both sides hold points
	                 slides towards the sparser side until it touches that
	                 side's extreme point
	LongestMedian    cuts at the median coordinate
	Fair             halves the extent of the points rather than the cell
	Hybrid           Midpoint at odd depths, LongestMedian at even depths
	MinimumVolume    cuts through the largest empty gap when it is clearly
	                 better than the median cut

Rules may return a position that leaves one side empty. The tree treats that as
a request to try again on a tightened bound, so rules do not need to guarantee
progress themselves.

*/

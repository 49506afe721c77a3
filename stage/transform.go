package stage

import "math"

var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the actor's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order: Translate(-PivotX, -PivotY) -> Scale -> Skew ->
// Rotate -> Translate(X, Y).
func computeLocalTransform(a *Actor) [6]float64 {
	sx, sy := a.ScaleX, a.ScaleY
	sin, cos := math.Sincos(a.Rotation)

	var tanSkewX, tanSkewY float64
	if a.SkewX != 0 {
		tanSkewX = math.Tan(a.SkewX)
	}
	if a.SkewY != 0 {
		tanSkewY = math.Tan(a.SkewY)
	}

	sa := sx
	sb := tanSkewY * sx
	sc := tanSkewX * sy
	sd := sy

	px, py := a.PivotX, a.PivotY
	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	ra := cos*sa - sin*sb
	rb := sin*sa + cos*sb
	rc := cos*sc - sin*sd
	rd := sin*sc + cos*sd
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{ra, rb, rc, rd, rtx + a.X, rty + a.Y}
}

func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes an actor's worldTransform. parentRecomputed
// forces recomputation even when the actor itself isn't dirty, so a moved
// ancestor propagates down without every descendant needing its own dirty
// flag set explicitly.
func updateWorldTransform(a *Actor, parentTransform [6]float64, parentRecomputed bool) {
	recompute := a.transformDirty || parentRecomputed
	if recompute {
		a.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(a))
		a.transformDirty = false
	}
	for _, c := range a.children {
		updateWorldTransform(c, a.worldTransform, recompute)
	}
}

// SetPosition sets the actor's local X and Y and marks it dirty.
func (a *Actor) SetPosition(x, y float64) {
	a.X, a.Y = x, y
	a.transformDirty = true
}

// SetScale sets the actor's ScaleX and ScaleY and marks it dirty.
func (a *Actor) SetScale(sx, sy float64) {
	a.ScaleX, a.ScaleY = sx, sy
	a.transformDirty = true
}

// SetRotation sets the actor's rotation in radians and marks it dirty.
func (a *Actor) SetRotation(r float64) {
	a.Rotation = r
	a.transformDirty = true
}

// WorldToLocal converts a world-space point to this actor's local space.
func (a *Actor) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(a.worldTransform), wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (a *Actor) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(a.worldTransform, lx, ly)
}

package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// HitInfo describes the result of intersecting a ray with a single sphere.
// Normal, HitPoint and Material are only meaningful when DidHit is true.
type HitInfo struct {
	DidHit   bool
	Normal   core.Vec3 // Unit length, always pointing away from the sphere center
	HitPoint core.Vec3
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect tests the ray against the sphere, accepting roots in [minDist, maxDist].
// A tangent ray (zero discriminant) is reported as a miss.
func (s Sphere) Intersect(ray core.Ray, minDist, maxDist float64) HitInfo {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return HitInfo{}
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < minDist || root > maxDist {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root < minDist || root > maxDist {
			return HitInfo{}
		}
	}

	hitPoint := ray.At(root)
	return HitInfo{
		DidHit:   true,
		Normal:   hitPoint.Subtract(s.Center).Divide(s.Radius),
		HitPoint: hitPoint,
		Material: s.Material,
	}
}

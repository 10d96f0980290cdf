package main

import "math"

const (
	ShipRollSensitivity  = 1.0
	ShipPitchSensitivity = 0.5
	ShipAnimDamping      = 10.0 // exponential approach rate
	MaxShipRoll          = 15.0 // degrees
	MaxShipPitchOffset   = 8.0  // degrees
	shipDeltaClamp       = 10.0 // max usable camera delta per frame
	shipAnimDeadZone     = 0.5  // delta below this decays the state
	shipAnimDecay        = 0.92
	shipAnimSnap         = 0.1 // state below this snaps to zero
	swayTarget           = 40.0
	swayApproachRate     = 5.0
)

// ShipAnim derives the cockpit's visual banking, pitching and sway
// from camera motion. Pure render output; nothing here feeds back
// into collision or scoring.
type ShipAnim struct {
	Roll        float64
	PitchOffset float64
	Sway        float64

	prevYaw   float64
	prevPitch float64
}

// NewShipAnim creates ship animation state referenced to the camera's
// current orientation, so the first frame produces no jolt.
func NewShipAnim(cam *Camera) *ShipAnim {
	return &ShipAnim{
		prevYaw:   cam.Yaw,
		prevPitch: cam.Pitch,
	}
}

// Update advances the animation from the camera's movement since the
// previous frame. strafeLeft/strafeRight are the raw held-key states.
func (a *ShipAnim) Update(dt float64, cam *Camera, strafeLeft, strafeRight bool) {
	yawDelta := WrapDegrees(cam.Yaw - a.prevYaw)
	pitchDelta := cam.Pitch - a.prevPitch

	yawDelta = Clamp(yawDelta, -shipDeltaClamp, shipDeltaClamp)
	pitchDelta = Clamp(pitchDelta, -shipDeltaClamp, shipDeltaClamp)

	// Turning left banks left, hence the negation
	targetRoll := Clamp(-yawDelta*ShipRollSensitivity, -MaxShipRoll, MaxShipRoll)
	targetPitch := Clamp(pitchDelta*ShipPitchSensitivity, -MaxShipPitchOffset, MaxShipPitchOffset)

	damping := math.Min(1.0, ShipAnimDamping*dt)
	a.Roll += (targetRoll - a.Roll) * damping
	a.Roll = Clamp(a.Roll, -MaxShipRoll, MaxShipRoll)
	a.PitchOffset += (targetPitch - a.PitchOffset) * damping
	a.PitchOffset = Clamp(a.PitchOffset, -MaxShipPitchOffset, MaxShipPitchOffset)

	// Return to neutral when the camera is still, and snap exactly to
	// zero below the threshold so the state can't creep forever.
	if math.Abs(yawDelta) < shipAnimDeadZone {
		a.Roll *= shipAnimDecay
	}
	if math.Abs(pitchDelta) < shipAnimDeadZone {
		a.PitchOffset *= shipAnimDecay
	}
	if math.Abs(a.Roll) < shipAnimSnap {
		a.Roll = 0
	}
	if math.Abs(a.PitchOffset) < shipAnimSnap {
		a.PitchOffset = 0
	}

	a.prevYaw = cam.Yaw
	a.prevPitch = cam.Pitch

	// Cockpit sway follows the strafe keys, not camera deltas
	target := 0.0
	if strafeLeft {
		target = -swayTarget
	} else if strafeRight {
		target = swayTarget
	}
	a.Sway += (target - a.Sway) * math.Min(1.0, swayApproachRate*dt)
}

// Reset re-references the animation to the camera and zeroes all output
func (a *ShipAnim) Reset(cam *Camera) {
	a.Roll = 0
	a.PitchOffset = 0
	a.Sway = 0
	a.prevYaw = cam.Yaw
	a.prevPitch = cam.Pitch
}

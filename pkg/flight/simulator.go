// Package flight implements the arcade flight model: a per-frame
// integrator for orientation, velocity, fuel and G load, plus the stall
// auto-recovery machine. The integrator never returns an error; corrupt
// numerics are healed in place and the frame proceeds with degraded
// values.
package flight

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/input"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/physics"
)

// Simulator advances a ShipState one frame at a time.
type Simulator struct {
	tun  Tuning
	rng  *rand.Rand
	log  *logging.Logger
	warn *logging.Throttle
}

// NewSimulator creates a simulator with the given tuning. The logger
// may be nil for silent operation.
func NewSimulator(tun Tuning, log *logging.Logger) *Simulator {
	seed := tun.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		tun:  tun,
		rng:  rand.New(rand.NewSource(seed)),
		log:  log,
		warn: logging.NewThrottle(1, time.Second),
	}
}

// Tuning returns the simulator's static configuration table.
func (s *Simulator) Tuning() Tuning {
	return s.tun
}

// Update advances the airframe by dt seconds under the given controls
// and returns the yaw angle after integration. dt is used as supplied;
// frame pacing belongs to the caller.
func (s *Simulator) Update(st *ShipState, in input.Controls, dt float64) float64 {
	if !physics.Finite(dt) || dt < 0 {
		dt = 0
	}
	s.sanitizeState(st)
	st.Elapsed += dt

	s.updateAssist(st)
	s.shapeRoll(st, in, dt)
	s.applyTurbulence(st, dt)
	s.coordinateTurn(st, dt)
	s.applyAssistCorrection(st, dt)
	s.couplePitch(st, in, dt)
	s.autoLevel(st, in, dt)
	s.updateGForce(st, dt)
	s.dampAngular(st)
	yaw := s.integrateOrientation(st, dt)
	thrust := s.updatePropulsion(st, in, dt)
	s.integrateVelocity(st, thrust, dt)
	s.updateAngleOfAttack(st, dt)
	st.WorldOffset = st.WorldOffset.Add(st.LinearVelocity.Mul(dt))

	return yaw
}

// shapeRoll ramps a persistent roll intensity while a roll key is held
// and decays it on release, then feeds the resulting rate delta into
// angular velocity. The delta is smoothed 70/30 against last frame's to
// keep the response stable across frame-rate swings, and reversals are
// damped so roll momentum resists snapping to the other side.
func (s *Simulator) shapeRoll(st *ShipState, in input.Controls, dt float64) {
	dir := in.RollDirection()
	if dir != 0 {
		st.rollIntensity = mgl64.Clamp(st.rollIntensity+dir*s.tun.RollRampUp*dt, -1, 1)
	} else {
		decay := s.tun.RollDecay * dt
		switch {
		case st.rollIntensity > decay:
			st.rollIntensity -= decay
		case st.rollIntensity < -decay:
			st.rollIntensity += decay
		default:
			st.rollIntensity = 0
		}
	}

	// Roll authority bleeds off toward the top of the envelope.
	authority := 1 - s.tun.RollAuthorityDrop*math.Min(1, st.Speed/s.tun.MaxSpeed)
	desired := st.rollIntensity * s.tun.MaxRollRate * authority

	delta := (desired - st.AngularVelocity[AxisRoll]) * math.Min(1, s.tun.RollResponse*dt)
	delta = 0.7*delta + 0.3*st.prevRollDelta
	if delta*st.AngularVelocity[AxisRoll] < 0 {
		delta *= s.tun.RollReversalDamping
	}
	st.AngularVelocity[AxisRoll] += delta
	st.prevRollDelta = delta
}

// applyTurbulence perturbs the angular rates with layered sinusoids,
// amplitude scaling with speed. Above 80% of max speed an extra
// randomized high-frequency term rattles every axis. Turbulence stands
// down while the assist is flying.
func (s *Simulator) applyTurbulence(st *ShipState, dt float64) {
	if st.Assist.Stabilizing || st.Speed < s.tun.TurbulenceMinSpeed {
		return
	}
	amp := s.tun.TurbulenceAmplitude * (st.Speed / s.tun.MaxSpeed)
	t := st.Elapsed
	st.AngularVelocity[AxisRoll] += amp * (0.5*math.Sin(t*1.7) + 0.25*math.Sin(t*4.3)) * dt
	st.AngularVelocity[AxisPitch] += amp * (0.4*math.Sin(t*2.3+1.3) + 0.2*math.Sin(t*5.1)) * dt
	st.AngularVelocity[AxisYaw] += amp * 0.3 * math.Sin(t*1.9+2.1) * dt

	if st.Speed > 0.8*s.tun.MaxSpeed {
		hf := amp * s.tun.HighSpeedTurbulence
		for axis := 0; axis < 3; axis++ {
			st.AngularVelocity[axis] += (s.rng.Float64()*2 - 1) * hf * dt
		}
	}
}

// coordinateTurn couples bank angle into yaw rate the way a coordinated
// turn does: the deeper the bank, the harder the nose comes around.
// Roll inside the dead zone commands no turn at all.
func (s *Simulator) coordinateTurn(st *ShipState, dt float64) {
	roll := st.Roll()
	desired := 0.0
	if math.Abs(roll) >= s.tun.YawDeadZone {
		speedFactor := mgl64.Clamp(st.Speed/s.tun.CruiseSpeed, 0.2, 1.5)
		desired = math.Sin(roll) * s.tun.YawFactor * speedFactor
	}
	st.AngularVelocity[AxisYaw] += (desired - st.AngularVelocity[AxisYaw]) * math.Min(1, s.tun.TurnInertia*dt)
}

// couplePitch adds the small nose-down biases: reverse thrust drags the
// nose down with speed, and banking trades lift for turn.
func (s *Simulator) couplePitch(st *ShipState, in input.Controls, dt float64) {
	if in.Reverse && !in.Thrust {
		st.AngularVelocity[AxisPitch] -= s.tun.ReversePitchCoupling * (st.Speed / s.tun.MaxSpeed) * dt
	}
	if bank := math.Abs(math.Sin(st.Roll())); bank > 0 {
		st.AngularVelocity[AxisPitch] -= s.tun.BankPitchCoupling * bank * dt
	}
}

// autoLevel pulls pitch and roll back toward the horizon whenever the
// pilot is not commanding a roll (or the assist is flying). The pull
// grows with the angle and is damped by whatever rotational momentum is
// already in the airframe.
func (s *Simulator) autoLevel(st *ShipState, in input.Controls, dt float64) {
	if in.RollDirection() != 0 && !st.Assist.Stabilizing {
		return
	}
	for _, axis := range [...]int{AxisPitch, AxisRoll} {
		angle := st.Orientation[axis]
		if angle == 0 {
			continue
		}
		pull := -angle * s.tun.LevelingStrength * (0.5 + math.Min(1, math.Abs(angle))) * dt
		pull /= 1 + math.Abs(st.AngularVelocity[axis])*s.tun.LevelingMomentumDrag
		st.AngularVelocity[axis] += pull
	}
}

// updateGForce derives the pilot load from the combined turn rates,
// weighted toward roll, and chases it exponentially. A spike lands on
// top when roll or yaw rate crosses the spike threshold. The companion
// shake magnitude decays a fixed fraction per frame but never below the
// floor set by the current turn intensity.
func (s *Simulator) updateGForce(st *ShipState, dt float64) {
	av := st.AngularVelocity
	speedFactor := mgl64.Clamp(st.Speed/s.tun.CruiseSpeed, 0.5, 1.5)
	turn := (0.5*math.Abs(av[AxisRoll]) + 0.3*math.Abs(av[AxisYaw]) + 0.2*math.Abs(av[AxisPitch])) *
		math.Max(1, st.Speed/6) * speedFactor

	target := 1 + turn
	if math.Abs(av[AxisRoll]) > s.tun.GSpikeThreshold || math.Abs(av[AxisYaw]) > s.tun.GSpikeThreshold {
		target += s.tun.GSpikeBoost
	}
	st.CurrentGForce += (target - st.CurrentGForce) * math.Min(1, s.tun.GForceResponse*dt)
	st.CurrentGForce = mgl64.Clamp(st.CurrentGForce, s.tun.MinGForce, s.tun.MaxGForce)

	st.ShakeMagnitude *= s.tun.ShakeDecay
	if floor := turn * s.tun.ShakeFloorScale; st.ShakeMagnitude < floor {
		st.ShakeMagnitude = floor
	}
}

// dampAngular bleeds rotational energy on all axes. Damping weakens
// slightly at speed, and a second pass squelches sub-threshold jitter
// that would otherwise buzz the camera.
func (s *Simulator) dampAngular(st *ShipState) {
	d := s.tun.BaseAngularDamping + s.tun.HighSpeedDampingBonus*math.Min(1, st.Speed/s.tun.MaxSpeed)
	for axis := 0; axis < 3; axis++ {
		st.AngularVelocity[axis] *= d
		if math.Abs(st.AngularVelocity[axis]) < s.tun.JitterThreshold {
			st.AngularVelocity[axis] *= s.tun.JitterDamping
		}
	}
}

// integrateOrientation accumulates the angular rates and wraps each
// axis back into (-pi, pi] once it passes a full turn. Non-finite
// components collapse to 0 inside WrapAngle.
func (s *Simulator) integrateOrientation(st *ShipState, dt float64) float64 {
	for axis := 0; axis < 3; axis++ {
		st.Orientation[axis] = physics.WrapAngle(st.Orientation[axis] + st.AngularVelocity[axis]*dt)
	}
	return st.Orientation[AxisYaw]
}

// updatePropulsion resolves the commanded thrust, afterburner state and
// fuel for this frame and returns the effective thrust level. Positive
// values push forward, negative values brake.
func (s *Simulator) updatePropulsion(st *ShipState, in input.Controls, dt float64) float64 {
	thrust := 0.0
	switch {
	case in.Thrust:
		thrust = 1
	case in.Reverse:
		thrust = s.tun.ReverseThrustLevel
	}

	// The assist owns the throttle while stabilizing: idle until
	// recovery thrust engages, then ramp up from the base level.
	a := st.Assist
	if a.Stabilizing {
		if a.RecoveryThrust {
			thrust = s.tun.RecoveryThrustBase + (1-s.tun.RecoveryThrustBase)*a.Progress
		} else {
			thrust = 0
		}
	}

	// A lit burner stays lit while its conditions hold; a cold one
	// relights only after the cooldown expires.
	wantBoost := in.Boost && in.Thrust && !a.Stabilizing &&
		st.FuelPercentage > s.tun.MinFuelForAfterburner
	lit := st.AfterburnerLit
	if lit {
		lit = wantBoost
	} else {
		lit = wantBoost && st.Elapsed >= st.AfterburnerCooldownUntil
	}
	if st.AfterburnerLit && !lit {
		st.AfterburnerCooldownUntil = st.Elapsed + s.tun.AfterburnerCooldown
		st.LastAfterburnerTime = st.Elapsed
	}
	st.AfterburnerLit = lit

	if lit {
		st.AfterburnerEffect = math.Min(1, st.AfterburnerEffect+s.tun.AfterburnerRamp*dt)
		thrust *= s.tun.AfterburnerMultiplier
	} else {
		st.AfterburnerEffect = math.Max(0, st.AfterburnerEffect-s.tun.AfterburnerDecay*dt)
	}

	// Reverse fades in over a short window after afterburner release so
	// the two never slam together.
	if thrust < 0 {
		if since := st.SinceAfterburner(); since < s.tun.ReverseFadeIn {
			thrust *= math.Max(0, since/s.tun.ReverseFadeIn)
		}
	}

	switch {
	case lit:
		st.FuelPercentage -= (s.tun.AfterburnerFuelRate + s.tun.NormalFuelRate) * dt
	case thrust > 0:
		st.FuelPercentage -= s.tun.NormalFuelRate * dt
	case thrust < 0:
		st.FuelPercentage -= s.tun.ReverseFuelRate * dt
	default:
		if in.Idle() {
			st.FuelPercentage += s.tun.RefuelRate * dt
		}
	}
	st.FuelPercentage = mgl64.Clamp(st.FuelPercentage, 0, 100)
	st.AfterburnerAvailable = st.FuelPercentage > s.tun.MinFuelForAfterburner

	// Dry tanks still push, just not hard.
	if st.FuelPercentage <= 0 && thrust > 0 {
		thrust *= s.tun.ExhaustedThrustFactor
	}

	// Engine power lags the commanded thrust for the camera and HUD.
	target := math.Min(1, math.Abs(thrust))
	st.EnginePower += (target - st.EnginePower) * math.Min(1, s.tun.EnginePowerResponse*dt)

	// Track the boosted ceiling, bleed it off after release.
	if lit {
		if st.Speed > st.PersistentMaxSpeed {
			st.PersistentMaxSpeed = st.Speed
		}
	} else if st.PersistentMaxSpeed > s.tun.MaxSpeed {
		st.PersistentMaxSpeed = math.Max(s.tun.MaxSpeed, st.PersistentMaxSpeed-s.tun.PersistentSpeedDecay*dt)
	}

	return thrust
}

// integrateVelocity applies thrust along the forward axis, enforces the
// speed floor by rescaling (never by reorienting), and caps speed at
// the ceiling in force this frame.
func (s *Simulator) integrateVelocity(st *ShipState, thrust, dt float64) {
	forward := st.Forward()
	switch {
	case thrust > 0:
		dir := forward
		if st.Assist.Stabilizing && st.Assist.RecoveryThrust {
			// Climb out along a blend of current forward and level
			// flight, with a small upward bias, so recovery thrust does
			// not fight the attitude correction.
			level := physics.Forward(0, st.Yaw())
			dir = physics.Lerp(forward, level, st.Assist.Progress)
			dir = dir.Add(physics.WorldUp.Mul(s.tun.RecoveryUpBias * st.Assist.Progress))
			if l := dir.Len(); l > 1e-9 {
				dir = dir.Mul(1 / l)
			} else {
				dir = forward
			}
		}
		st.LinearVelocity = st.LinearVelocity.Add(dir.Mul(thrust * s.tun.MilitaryThrust * dt))
	case thrust < 0:
		st.LinearVelocity = st.LinearVelocity.Add(forward.Mul(thrust * s.tun.MilitaryThrust * dt))
		st.LinearVelocity = st.LinearVelocity.Mul(math.Max(0, 1-s.tun.ReverseDrag*dt))
	default:
		st.LinearVelocity = st.LinearVelocity.Mul(math.Max(0, 1-s.tun.IdleDeceleration*dt))
	}

	speed := st.LinearVelocity.Len()
	if speed < s.tun.MinSpeed {
		if speed > 1e-9 {
			st.LinearVelocity = st.LinearVelocity.Mul(s.tun.MinSpeed / speed)
		} else {
			st.LinearVelocity = forward.Mul(s.tun.MinSpeed)
		}
		speed = s.tun.MinSpeed
	}

	limit := math.Max(s.tun.MaxSpeed, st.PersistentMaxSpeed)
	if st.AfterburnerLit {
		if burn := s.tun.MaxSpeed + (s.tun.MaxAfterburnerSpeed-s.tun.MaxSpeed)*st.AfterburnerEffect; burn > limit {
			limit = burn
		}
	}
	if speed > limit {
		st.LinearVelocity = st.LinearVelocity.Mul(limit / speed)
		speed = limit
	}
	st.Speed = speed
}

// updateAngleOfAttack measures the angle between the nose and the
// actual velocity direction, smoothed and capped. Below the minimum
// speed the reading is meaningless and pins at zero.
func (s *Simulator) updateAngleOfAttack(st *ShipState, dt float64) {
	if st.Speed <= s.tun.AoAMinSpeed {
		st.AngleOfAttack = 0
		return
	}
	dir := st.LinearVelocity.Mul(1 / st.Speed)
	dot := mgl64.Clamp(st.Forward().Dot(dir), -1, 1)
	target := mgl64.RadToDeg(math.Acos(dot))
	st.AngleOfAttack += (target - st.AngleOfAttack) * math.Min(1, s.tun.AoAResponse*dt)
	if st.AngleOfAttack > s.tun.MaxAngleOfAttack {
		st.AngleOfAttack = s.tun.MaxAngleOfAttack
	}
}

// sanitizeState heals any non-finite field before the frame's math
// runs, so an adversarial or corrupted state recovers on the very next
// update instead of spreading NaN through the integrator.
func (s *Simulator) sanitizeState(st *ShipState) {
	healed := 0

	if !physics.FiniteVec(st.Orientation) {
		st.Orientation = mgl64.Vec3{}
		healed++
	}
	if !physics.FiniteVec(st.AngularVelocity) {
		st.AngularVelocity = mgl64.Vec3{}
		healed++
	}
	if !physics.FiniteVec(st.LinearVelocity) {
		st.LinearVelocity = st.Forward().Mul(s.tun.MinSpeed)
		healed++
	}
	if !physics.Finite(st.Speed) {
		st.Speed = st.LinearVelocity.Len()
		healed++
	}
	if !physics.Finite(st.EnginePower) {
		st.EnginePower = 0
		healed++
	}
	if !physics.Finite(st.AfterburnerEffect) {
		st.AfterburnerEffect = 0
		healed++
	}
	if !physics.Finite(st.FuelPercentage) {
		st.FuelPercentage = 0
		healed++
	}
	if !physics.Finite(st.CurrentGForce) {
		st.CurrentGForce = s.tun.MinGForce
		healed++
	}
	if !physics.Finite(st.ShakeMagnitude) {
		st.ShakeMagnitude = 0
		healed++
	}
	if !physics.Finite(st.AngleOfAttack) {
		st.AngleOfAttack = 0
		healed++
	}
	if !physics.FiniteVec(st.WorldOffset) {
		st.WorldOffset = mgl64.Vec3{}
		healed++
	}
	if !physics.Finite(st.PersistentMaxSpeed) {
		st.PersistentMaxSpeed = s.tun.MaxSpeed
		healed++
	}
	if !physics.Finite(st.Elapsed) {
		st.Elapsed = 0
		healed++
	}
	if !physics.Finite(st.AfterburnerCooldownUntil) {
		st.AfterburnerCooldownUntil = 0
		healed++
	}
	if !physics.Finite(st.LastAfterburnerTime) {
		st.LastAfterburnerTime = st.Elapsed - s.tun.ReverseFadeIn
		healed++
	}
	if !physics.Finite(st.Assist.Progress) {
		st.Assist.Progress = 0
		healed++
	}
	if !physics.Finite(st.Assist.StallStart) || !physics.Finite(st.Assist.TriggerDelay) {
		st.Assist.StallStart = st.Elapsed
		st.Assist.TriggerDelay = s.tun.StallDelayMax
		healed++
	}
	if !physics.Finite(st.rollIntensity) {
		st.rollIntensity = 0
		healed++
	}
	if !physics.Finite(st.prevRollDelta) {
		st.prevRollDelta = 0
		healed++
	}

	if healed > 0 && s.log != nil && s.warn.Allow("state_heal") {
		s.log.Warn(context.Background(), "healed non-finite flight state",
			"fields", healed, "elapsed", st.Elapsed)
	}
}

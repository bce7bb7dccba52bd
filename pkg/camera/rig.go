// pkg/camera/rig.go
package camera

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/flight"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/input"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/logging"
	"github.com/magooney-loon/jp-8-kerosene-sub000/pkg/physics"
)

// maxFrameDT is the frame gap treated as a tab-suspend artifact. The
// rig skips such frames entirely rather than integrating a huge step.
const maxFrameDT = 0.1

// Rig drives a chase camera from flight state. All cross-frame
// smoothing scratch lives here, initialized eagerly, so the flight
// state never carries camera bookkeeping.
type Rig struct {
	tun  Tuning
	rng  *rand.Rand
	log  *logging.Logger
	warn *logging.Throttle

	smoothedOffset mgl64.Vec3
	prevPosition   mgl64.Vec3
	recoil         float64
	thrustFOV      float64
	reverseFOV     float64
	initialized    bool
}

// NewRig creates a rig with the given tuning. The logger may be nil for
// silent operation.
func NewRig(tun Tuning, log *logging.Logger) *Rig {
	seed := tun.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rig{
		tun:  tun,
		rng:  rand.New(rand.NewSource(seed)),
		log:  log,
		warn: logging.NewThrottle(1, time.Second),
	}
}

// Tuning returns the rig's static configuration table.
func (r *Rig) Tuning() Tuning {
	return r.tun
}

// Update mutates the pose toward the ship for this frame. Oversized and
// non-finite dt values are treated as suspend artifacts and skipped.
// prolongedFire is the externally tracked continuous-fire factor in
// [0, 1].
func (r *Rig) Update(pose *Pose, st *flight.ShipState, in input.Controls, prolongedFire, dt float64) {
	if !physics.Finite(dt) || dt <= 0 || dt > maxFrameDT {
		return
	}
	if !physics.Finite(prolongedFire) || prolongedFire < 0 {
		prolongedFire = 0
	} else if prolongedFire > 1 {
		prolongedFire = 1
	}
	r.precheck(st, pose)

	// The camera follows a softened copy of the attitude so extreme
	// maneuvers read dramatic without whipping the view.
	pitch := st.Pitch() * r.tun.PitchInfluence
	yaw := st.Yaw() * r.tun.YawInfluence
	roll := st.Roll() * r.tun.RollInfluence
	forward := physics.Forward(pitch, yaw)
	right := physics.Right(yaw)
	anchor := st.WorldOffset

	chase := r.chaseOffset(forward, right, pitch, roll)

	thrustOffset, abShake := r.thrustEffects(st, in, forward, right, dt)
	reverseOffset := r.reverseEffects(st, in, forward, right, dt)
	fireOffset, fovBump, lookJitter := r.fireEffects(st, in, forward, right, prolongedFire, dt)
	sideOffset := right.Mul(-st.AngularVelocity[flight.AxisYaw] * st.Speed * r.tun.TurnSideGain)

	effects := thrustOffset.Add(reverseOffset).Add(fireOffset).Add(sideOffset)
	smoothed := r.smoothOffset(effects, dt)
	shake := r.aggregateShake(st, abShake)

	target := anchor.Add(chase).Add(smoothed).Add(shake)
	r.moveCamera(pose, target, st, in, dt)
	r.aimCamera(pose, st, anchor, forward, right, roll, lookJitter, fovBump)

	r.prevPosition = pose.Position
}

// precheck is the last line of defense before visible motion: it
// re-validates the state fields the camera consumes, the pose, and the
// rig's own scratch, resetting any offender in place.
func (r *Rig) precheck(st *flight.ShipState, pose *Pose) {
	healed := 0
	if !physics.FiniteVec(st.WorldOffset) {
		st.WorldOffset = mgl64.Vec3{}
		healed++
	}
	if !physics.Finite(st.Speed) || st.Speed < 0 {
		st.Speed = 0
		healed++
	}
	if !physics.FiniteVec(st.Orientation) {
		st.Orientation = mgl64.Vec3{}
		healed++
	}
	if !physics.FiniteVec(st.AngularVelocity) {
		st.AngularVelocity = mgl64.Vec3{}
		healed++
	}
	if !physics.FiniteVec(st.LinearVelocity) {
		st.LinearVelocity = mgl64.Vec3{}
		healed++
	}

	healed += pose.sanitize(st.WorldOffset, r.tun)

	if !physics.Finite(r.recoil) {
		r.recoil = 0
		healed++
	}
	if !physics.Finite(r.thrustFOV) {
		r.thrustFOV = 0
		healed++
	}
	if !physics.Finite(r.reverseFOV) {
		r.reverseFOV = 0
		healed++
	}
	if !physics.FiniteVec(r.prevPosition) {
		r.prevPosition = pose.Position
		healed++
	}

	if healed > 0 && r.log != nil && r.warn.Allow("camera_heal") {
		r.log.Warn(context.Background(), "healed non-finite camera inputs", "fields", healed)
	}
}

// chaseOffset places the camera behind and above the ship, sliding
// sideways and climbing with bank so the horizon stays readable in a
// turn.
func (r *Rig) chaseOffset(forward, right mgl64.Vec3, pitch, roll float64) mgl64.Vec3 {
	lateral := mgl64.Clamp(roll*r.tun.BankOffsetGain, -r.tun.BankOffsetMax, r.tun.BankOffsetMax)
	height := r.tun.Height +
		math.Abs(pitch)*r.tun.PitchHeightGain +
		math.Abs(roll)*r.tun.RollHeightGain

	return forward.Mul(-r.tun.Distance).
		Add(physics.WorldUp.Mul(height)).
		Add(right.Mul(lateral))
}

// thrustEffects pulls the camera back and down while the engine works,
// widening the field of view up to a capped delta. During the
// post-afterburner cooldown the FOV chases its target more slowly;
// with the burner near full it also shakes and slowly sways the view.
// Off throttle the FOV relaxes toward baseline and snaps once close.
func (r *Rig) thrustEffects(st *flight.ShipState, in input.Controls, forward, right mgl64.Vec3, dt float64) (mgl64.Vec3, float64) {
	accelerating := in.Thrust || st.InAfterburnerCooldown()
	if !accelerating {
		r.thrustFOV -= r.thrustFOV * math.Min(1, r.tun.FOVRelaxRate*dt)
		if math.Abs(r.thrustFOV) < r.tun.FOVSnap {
			r.thrustFOV = 0
		}
		return mgl64.Vec3{}, 0
	}

	pull := st.EnginePower * r.tun.ThrustPullback * (1 + st.AfterburnerEffect*r.tun.AfterburnerPullback)
	offset := forward.Mul(-pull).
		Sub(physics.WorldUp.Mul(st.EnginePower * r.tun.ThrustDrop))

	fovTarget := math.Min(r.tun.MaxFOVDelta,
		st.EnginePower*r.tun.FOVThrustGain*(1+st.AfterburnerEffect*r.tun.FOVAfterburnerGain))
	rate := r.tun.FOVRate
	if st.InAfterburnerCooldown() {
		rate *= r.tun.CooldownFOVFactor
	}
	r.thrustFOV += (fovTarget - r.thrustFOV) * math.Min(1, rate*dt)

	var extraShake float64
	if st.AfterburnerEffect > 0.7 {
		extraShake = st.AfterburnerEffect * r.tun.AfterburnerShake
		sway := math.Sin(st.Elapsed*1.3) * st.AfterburnerEffect * r.tun.AfterburnerWobble
		offset = offset.Add(right.Mul(sway))
	}
	return offset, extraShake
}

// reverseEffects zooms in, lifts and narrows the view while braking
// hard at speed, with a lateral oscillation once the effect runs hot.
// It stands down whenever thrust or the afterburner cooldown would
// fight it.
func (r *Rig) reverseEffects(st *flight.ShipState, in input.Controls, forward, right mgl64.Vec3, dt float64) mgl64.Vec3 {
	active := in.Reverse && !in.Thrust &&
		st.Speed > r.tun.ReverseZoomMinSpeed && !st.InAfterburnerCooldown()
	if !active {
		r.reverseFOV -= r.reverseFOV * math.Min(1, r.tun.ReverseFOVRate*dt)
		if math.Abs(r.reverseFOV) < r.tun.FOVSnap {
			r.reverseFOV = 0
		}
		return mgl64.Vec3{}
	}

	intensity := math.Min(1, st.Speed/(2*r.tun.ReverseZoomMinSpeed))
	offset := forward.Mul(intensity * r.tun.ReversePull).
		Add(physics.WorldUp.Mul(intensity * r.tun.ReverseLift))

	r.reverseFOV += (intensity*r.tun.ReverseFOVNarrow - r.reverseFOV) * math.Min(1, r.tun.ReverseFOVRate*dt)

	if intensity > r.tun.ReverseShakeThreshold {
		wobble := math.Sin(st.Elapsed*r.tun.ReverseShakeFreq) * r.tun.ReverseShakeAmp * intensity
		offset = offset.Add(right.Mul(wobble))
	}
	return offset
}

// fireEffects builds recoil intensity while the trigger is held and
// decays it otherwise, turning it into pullback, vibration, random
// shake and an FOV bump. The prolonged-fire factor amplifies all of it
// and layers a low-frequency overheat wobble on top, including a
// perturbation of where the camera looks.
func (r *Rig) fireEffects(st *flight.ShipState, in input.Controls, forward, right mgl64.Vec3, prolongedFire, dt float64) (mgl64.Vec3, float64, mgl64.Vec3) {
	if in.Fire {
		r.recoil = math.Min(1, r.recoil+r.tun.RecoilBuild*dt)
	} else {
		r.recoil = math.Max(0, r.recoil-r.tun.RecoilDecay*dt)
	}
	if r.recoil <= 0 && prolongedFire <= 0 {
		return mgl64.Vec3{}, 0, mgl64.Vec3{}
	}

	amp := r.recoil * (1 + prolongedFire*r.tun.ProlongedAmplify)
	t := st.Elapsed

	offset := forward.Mul(-amp * r.tun.RecoilPullback).
		Add(physics.WorldUp.Mul(amp * r.tun.RecoilLift)).
		Add(right.Mul(math.Sin(t*r.tun.RecoilVibFreq1) * r.tun.RecoilVibAmp * amp)).
		Add(physics.WorldUp.Mul(math.Sin(t*r.tun.RecoilVibFreq2+1.9) * r.tun.RecoilVibAmp * 0.7 * amp)).
		Add(r.jitter(r.tun.RecoilShake * amp))

	fovBump := amp * r.tun.RecoilFOVBump
	lookJitter := physics.WorldUp.Mul(r.recoil * r.tun.LookRecoilLift).
		Add(r.jitter(r.tun.LookRecoilJitter * amp))

	if prolongedFire > 0 {
		offset = offset.
			Add(physics.WorldUp.Mul(math.Sin(t*r.tun.OverheatFreq) * prolongedFire * r.tun.OverheatAmp)).
			Add(right.Mul(math.Cos(t*r.tun.OverheatFreq*0.8) * prolongedFire * r.tun.OverheatAmp * 0.6))
		fovBump += math.Sin(t*r.tun.OverheatFreq*0.7) * prolongedFire * r.tun.OverheatFOV
		lookJitter = lookJitter.
			Add(right.Mul(math.Sin(t*r.tun.OverheatFreq*1.1) * prolongedFire * 0.4)).
			Add(physics.WorldUp.Mul(math.Cos(t*r.tun.OverheatFreq*0.9) * prolongedFire * 0.3))
	}
	return offset, fovBump, lookJitter
}

// aggregateShake folds the airframe's shake with the extra shake earned
// at high engine power and G load, caps the total, and spreads it in a
// random direction.
func (r *Rig) aggregateShake(st *flight.ShipState, extra float64) mgl64.Vec3 {
	shake := st.ShakeMagnitude + extra
	if st.EnginePower > 0.8 {
		shake += (st.EnginePower - 0.8) / 0.2 * r.tun.HighPowerShake
	}
	if st.CurrentGForce > r.tun.GShakeStart {
		shake += (st.CurrentGForce - r.tun.GShakeStart) * r.tun.GShakeGain
	}
	if shake > r.tun.MaxShake {
		shake = r.tun.MaxShake
	}
	return r.jitter(shake * r.tun.ShakeScale)
}

// smoothOffset low-passes the combined effect offset so switching
// between effect branches never pops the camera. A poisoned accumulator
// resets to the fresh value instead of spreading.
func (r *Rig) smoothOffset(effects mgl64.Vec3, dt float64) mgl64.Vec3 {
	if !physics.FiniteVec(r.smoothedOffset) {
		r.smoothedOffset = effects
		return r.smoothedOffset
	}
	r.smoothedOffset = physics.Lerp(r.smoothedOffset, effects, math.Min(1, r.tun.SmoothingRate*dt))
	return r.smoothedOffset
}

// moveCamera closes on the target position. Oversized gaps advance by a
// bounded fixed step instead of snapping; the threshold tightens during
// the risky window right after afterburner release with reverse held.
// Ordinary gaps use a lag lerp that tightens with engine power, blended
// against a slower interpolation during the cooldown. A second,
// independent check clamps the actual motion since last frame.
func (r *Rig) moveCamera(pose *Pose, target mgl64.Vec3, st *flight.ShipState, in input.Controls, dt float64) {
	if !r.initialized {
		pose.Position = target
		r.prevPosition = target
		r.initialized = true
		return
	}

	threshold := r.tun.JumpThreshold
	if in.Reverse && st.SinceAfterburner() < r.tun.RiskyWindow {
		threshold = r.tun.RiskyJumpLimit
	}

	if gap := target.Sub(pose.Position).Len(); gap > threshold && !in.Boost {
		pose.Position = physics.StepToward(pose.Position, target, r.tun.MaxStep)
	} else {
		t := math.Min(1, (r.tun.LagBase+r.tun.LagPowerGain*st.EnginePower)*dt)
		if st.InAfterburnerCooldown() {
			slow := math.Min(1, r.tun.CooldownLag*dt)
			mix := r.tun.CooldownIdleMix
			if in.Boost {
				mix = r.tun.CooldownBoostMix
			}
			t = physics.LerpScalar(slow, t, mix)
		}
		pose.Position = physics.Lerp(pose.Position, target, t)
	}

	if motion := pose.Position.Sub(r.prevPosition).Len(); motion > r.tun.MaxMotionPerFrame {
		pose.Position = physics.StepToward(r.prevPosition, pose.Position, r.tun.MaxMotionPerFrame)
	}
}

// aimCamera points the camera ahead of the ship along its velocity,
// harder under thrust, and assembles the final up vector and field of
// view. A degenerate look target gets nudged forward so the view matrix
// never collapses.
func (r *Rig) aimCamera(pose *Pose, st *flight.ShipState, anchor, forward, right mgl64.Vec3, roll float64, lookJitter mgl64.Vec3, fovBump float64) {
	lead := r.tun.LookAhead * (1 + st.EnginePower*r.tun.LookAheadBoost)
	look := anchor.Add(st.LinearVelocity.Mul(lead)).Add(lookJitter)
	if look.Sub(pose.Position).Len() < 1e-6 {
		look = pose.Position.Add(forward)
	}
	pose.LookTarget = look

	up := physics.WorldUp.Add(right.Mul(math.Sin(roll) * r.tun.UpRollLean))
	pose.Up = up.Mul(1 / up.Len())

	pose.FOV = mgl64.Clamp(r.tun.BaseFOV+r.thrustFOV-r.reverseFOV+fovBump, r.tun.MinFOV, r.tun.MaxFOV)
}

// jitter returns a random offset within ±scale on each axis.
func (r *Rig) jitter(scale float64) mgl64.Vec3 {
	if scale <= 0 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{
		(r.rng.Float64()*2 - 1) * scale,
		(r.rng.Float64()*2 - 1) * scale,
		(r.rng.Float64()*2 - 1) * scale,
	}
}

package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/core/ecs"
	"github.com/antitower/server/internal/core/event"
	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/scripting"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

// AttackSystem 驅動所有交戰中的攻擊者：攻擊期間速度歸零，
// 攻速計時器每完成一次就命中一次。
// 只有讓目標生命值從大於零降到零以下的那一擊才發出 Died。
// 目標已不存在時以 Disengaged 結束交戰。
// Phase 4（EntityUpdates），在接觸處理之後。
type AttackSystem struct {
	world *world.State
	lua   *scripting.Engine
}

func NewAttackSystem(ws *world.State, lua *scripting.Engine) *AttackSystem {
	return &AttackSystem{world: ws, lua: lua}
}

func (s *AttackSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *AttackSystem) Update(dt time.Duration) {
	ws := s.world
	ecs.Each2(ws.Combats, ws.Attacks, func(id ecs.EntityID, c *component.Combat, atk *component.Attack) {
		if !c.Engaged() {
			return
		}
		if v, ok := ws.Velocities.Get(id); ok {
			v.Value = vmath.Vec3{}
		}
		if a, ok := ws.Accelerations.Get(id); ok {
			a.Value = vmath.Vec3{}
		}

		h, ok := ws.Healths.Get(c.Target)
		if !ok || !ws.ECS.Alive(c.Target) {
			target := c.Target
			c.Disengage()
			event.Emit(ws.Bus, event.Disengaged{Attacker: id, Target: target})
			return
		}

		atk.Rate.Advance(dt)
		if !atk.Rate.JustFinished() {
			return
		}

		before := h.Value
		h.Value -= s.lua.CalcAttackDamage(scripting.AttackContext{
			AttackerKind: ws.KindOf(id).String(),
			TargetKind:   ws.KindOf(c.Target).String(),
			Base:         atk.Amount,
			TargetHealth: before,
		})
		if before > 0 && h.Value <= 0 {
			event.Emit(ws.Bus, event.Died{Entity: c.Target, Killer: id})
			ws.Log().Debug("target died",
				zap.Stringer("kind", ws.KindOf(c.Target)),
				zap.Uint64("target", uint64(c.Target)),
				zap.Uint64("killer", uint64(id)))
		}
	})
}

// AttackRemovalSystem 讓本 tick 目標已死亡的攻擊者回到 Idle。
// Phase 4（EntityUpdates），在 AttackSystem 之後。
type AttackRemovalSystem struct {
	world *world.State
}

func NewAttackRemovalSystem(ws *world.State) *AttackRemovalSystem {
	return &AttackRemovalSystem{world: ws}
}

func (s *AttackRemovalSystem) Phase() coresys.Phase { return coresys.PhaseEntityUpdates }

func (s *AttackRemovalSystem) Update(_ time.Duration) {
	ws := s.world
	for _, ev := range event.Read[event.Died](ws.Bus) {
		ws.Combats.Each(func(id ecs.EntityID, c *component.Combat) {
			if c.Engaged() && c.Target == ev.Entity {
				c.Disengage()
				event.Emit(ws.Bus, event.Disengaged{Attacker: id, Target: ev.Entity})
			}
		})
	}
}

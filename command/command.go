// Package command implements C7, the command synthesiser: turning a
// stitched pose sequence (motionplan/stitch) into the text token stream
// a downstream robot controller consumes, and the inverse operation used
// to verify that bijection in tests and to build the boundary's extended
// "coords" response (spec.md §4.7, §6).
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/motionplan/primitive"
)

// Fin is the terminal token every command stream ends with.
const Fin = "FIN"

// ErrInvalidToken is returned by Reconstruct when a token is not one this
// package emits.
var ErrInvalidToken = errors.New("command: unrecognized token")

// Synthesize walks consecutive pose pairs in poses and returns the ordered
// token list described in spec.md §4.7: straight runs of identical
// direction collapse into one FW/BW token scaled at 10 units per cell,
// arc turns never combine, and a pose carrying a screenshot tag gets a
// SNAP{id} appended right after the token for the move that reached it.
// cfg must match the primitive.Set the poses were planned under, since
// arc endpoints depend on whether big-turn radii are in effect.
func Synthesize(poses []gridspace.Pose, cfg primitive.Set) ([]string, error) {
	tokens := make([]string, 0, len(poses))
	if len(poses) == 0 {
		return append(tokens, Fin), nil
	}
	if poses[0].HasScreenshot() {
		tokens = append(tokens, snapToken(poses[0].ScreenshotID))
	}

	i := 1
	for i < len(poses) {
		from, to := poses[i-1].GeometricPose, poses[i].GeometricPose
		if from == to {
			// Degenerate zero-length hop: the leg's standoff pose
			// coincided with its own source. No motion occurred, so
			// thread the snap straight through without a token.
			if poses[i].HasScreenshot() {
				tokens = append(tokens, snapToken(poses[i].ScreenshotID))
			}
			i++
			continue
		}
		kind, ok := classify(from, to, cfg)
		if !ok {
			return nil, errors.Errorf("command: no primitive connects %v to %v", from, to)
		}

		if !kind.IsArc() {
			run := 1
			j := i + 1
			for j < len(poses) && !poses[j-1].HasScreenshot() {
				nextKind, ok := classify(poses[j-1].GeometricPose, poses[j].GeometricPose, cfg)
				if !ok || nextKind != kind {
					break
				}
				run++
				j++
			}
			tokens = append(tokens, straightToken(kind, run))
			i += run
		} else {
			tokens = append(tokens, arcToken(kind))
			i++
		}

		if poses[i-1].HasScreenshot() {
			tokens = append(tokens, snapToken(poses[i-1].ScreenshotID))
		}
	}

	tokens = append(tokens, Fin)
	return tokens, nil
}

// Join formats tokens as the comma-separated string the boundary sends
// over the wire.
func Join(tokens []string) string {
	return strings.Join(tokens, ",")
}

func classify(from, to gridspace.GeometricPose, cfg primitive.Set) (primitive.Kind, bool) {
	for _, k := range primitive.All {
		if primitive.Endpoint(from, k, cfg.BigTurn) == to {
			return k, true
		}
	}
	return 0, false
}

func straightToken(k primitive.Kind, cells int) string {
	d := 10 * cells
	if k == primitive.Forward {
		return fmt.Sprintf("FW%d", d)
	}
	return fmt.Sprintf("BW%d", d)
}

func arcToken(k primitive.Kind) string {
	switch k {
	case primitive.ForwardLeft:
		return "FL"
	case primitive.ForwardRight:
		return "FR"
	case primitive.BackwardLeft:
		return "BL"
	case primitive.BackwardRight:
		return "BR"
	default:
		return ""
	}
}

func snapToken(id int) string {
	return fmt.Sprintf("SNAP%d", id)
}

// Reconstruct replays tokens against the stitched pose sequence they were
// derived from and returns the entries a consumer would land on: one per
// motion token, in order, per spec.md §4.7's pose-trace reconstruction
// law. SNAP tokens advance zero entries and contribute no output; FIN
// terminates. Mirrors the reference server's index-walking coordinate
// trace.
func Reconstruct(poses []gridspace.Pose, tokens []string) ([]gridspace.Pose, error) {
	var out []gridspace.Pose
	idx := 0
	for _, tok := range tokens {
		switch {
		case tok == Fin:
			return out, nil
		case strings.HasPrefix(tok, "SNAP"):
			continue
		case strings.HasPrefix(tok, "FW") || strings.HasPrefix(tok, "BW"):
			d, err := strconv.Atoi(tok[2:])
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidToken, "%q: %v", tok, err)
			}
			if d%10 != 0 {
				return nil, errors.Wrapf(ErrInvalidToken, "%q: distance not a multiple of 10", tok)
			}
			idx += d / 10
		case tok == "FL" || tok == "FR" || tok == "BL" || tok == "BR":
			idx++
		default:
			return nil, errors.Wrapf(ErrInvalidToken, "%q", tok)
		}
		if idx >= len(poses) {
			return nil, errors.Errorf("command: token %q walks past the end of the pose trace", tok)
		}
		out = append(out, poses[idx])
	}
	return out, nil
}

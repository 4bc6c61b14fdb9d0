// Package missionfile loads CUE mission packs.
//
// A pack declares one or more named missions, each giving the planet size,
// obstacle list, rover start pose, and optionally a scripted command batch.
// Field values reuse the same textual grammar as the two-line text sources,
// so a pack is validated by the same parser the runtime trusts:
//
//	mission: demo: {
//		planet: {
//			size:      "5x4"
//			obstacles: "2,0 0,3"
//		}
//		rover: {
//			position:  "0,0"
//			direction: "N"
//		}
//		commands: "FFRFF"
//	}
//
// Decode failures carry CUE source positions so a bad pack points at the
// offending line.
package missionfile

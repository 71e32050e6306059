package event

const (
	ScoreChanged    Type = "ScoreChanged"    // Score moved after a projectile left the field
	RingHit         Type = "RingHit"         // Projectile crossed a ring for the first time
	LevelStarted    Type = "LevelStarted"    // Countdown finished, level is live
	CountdownStep   Type = "CountdownStep"   // 3, 2, 1, GO
	LevelEnded      Type = "LevelEnded"      // Level duration expired
	GameOver        Type = "GameOver"        // Last level expired, score is final
	ProjectileFired Type = "ProjectileFired" // Fire request accepted
)

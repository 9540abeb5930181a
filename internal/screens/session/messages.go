package session

// startMsg asks the screen to start or resume its quiz. It is sent from
// Init so the engine is only touched on the update loop.
type startMsg struct{}

// quizFinishedMsg is sent once the engine reports the session complete.
type quizFinishedMsg struct{}

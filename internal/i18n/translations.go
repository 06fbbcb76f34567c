package i18n

var translations = map[Lang]map[string]string{
	EN: {
		"appTitle":                   "Workout Generator",
		"appTagline":                 "Personalized routines for your goals and schedule",
		"goalDescriptionLabel":       "Describe your goal or problem",
		"goalDescriptionPlaceholder": "e.g. lower back pain from sitting, first 5K, just want to feel stronger",
		"goalDescriptionHint":        "The AI will figure out what to train based on your description.",
		"equipment":                  "Equipment Available",
		"equipmentBodyweight":        "Bodyweight Only",
		"equipmentDumbbells":         "Dumbbells / Bands",
		"equipmentFullGym":           "Full Gym",
		"timeAvailable":              "Time Available",
		"min":                        "min",
		"timeRange":                  "15 min – 120 min",
		"generateButton":             "Generate My Workout",
		"buildingWorkout":            "Building your workout...",
		"warmup":                     "Warmup",
		"mainWorkout":                "Main Workout",
		"cooldown":                   "Cooldown",
		"sets":                       "sets",
		"reps":                       "reps",
		"rest":                       "Rest",
		"startWorkout":               "Start Workout",
		"generateAnother":            "Generate Another Workout",
		"estimatedDuration":          "Estimated duration",
		"matchedToTarget":            "matched to your {min} min target",
		"playerWork":                 "Work",
		"playerRest":                 "Rest",
		"playerNext":                 "Next",
		"playerPlay":                 "Play",
		"playerPause":                "Pause",
		"playerSkip":                 "Skip",
		"playerGetReady":             "Get ready for",
		"playerAnnounce":             "Get ready for {exercise}",
		"playerFinished":             "Workout complete",
		"playerMuted":                "Muted",
		"playerHelp":                 "Space play/pause · n skip · m mute · r restart · Esc close",
		"setOf":                      "Set {n} of {total}",
		"errorFailed":                "Failed to generate workout",
		"errorGeneric":               "Something went wrong",
		"errorMissingKey":            "No API key configured",
		"errorInvalidInput":          "Please describe a goal, pick equipment and a time",
		"errorRateLimited":           "Too many requests, please wait a moment and try again",
		"errorAuth":                  "The API key was rejected",
		"errorAccessDenied":          "Access denied, check your API key permissions",
		"errorMalformed":             "The generated workout could not be read, please try again",
		"errorNoIntervals":           "This workout has no timed sets to play",
		"footerTailored":             "Your workout will be tailored to your selected preferences",
		"howToExercise":              "Look up how to do this exercise",
		"generalFitness":             "General fitness",
		"language":                   "Language",
		"languageName":               "English",
		"loadWorkout":                "Load Workout File",
		"workoutFile":                "Workout file (JSON or YAML)",
		"playerPaused":               "Paused",
		"playerIdle":                 "Press Space to start",
		"checklistHelp":              "Enter tick · Tab next list · s start · h how-to link · g new workout",
		"noWorkout":                  "No workout yet. Press 1 to create one.",
	},
	ZH: {
		"appTitle":                   "我的健身 AI",
		"appTagline":                 "依目標與時間為你規劃專屬課表",
		"goalDescriptionLabel":       "描述你的目標或狀況",
		"goalDescriptionPlaceholder": "例如：久坐腰痠想改善、想跑第一次 5K、只想變健康",
		"goalDescriptionHint":        "AI 會依你的描述決定要練哪些部位與類型。",
		"equipment":                  "可用器材",
		"equipmentBodyweight":        "徒手",
		"equipmentDumbbells":         "啞鈴 / 彈力帶",
		"equipmentFullGym":           "完整健身房",
		"timeAvailable":              "可用時間",
		"min":                        "分鐘",
		"timeRange":                  "15 – 120 分鐘",
		"generateButton":             "生成我的課表",
		"buildingWorkout":            "正在生成課表...",
		"warmup":                     "熱身",
		"mainWorkout":                "主課表",
		"cooldown":                   "收操",
		"sets":                       "組",
		"reps":                       "次",
		"rest":                       "休息",
		"startWorkout":               "開始訓練",
		"generateAnother":            "重新生成課表",
		"estimatedDuration":          "預估時長",
		"matchedToTarget":            "已對齊你的 {min} 分鐘目標",
		"playerWork":                 "訓練",
		"playerRest":                 "休息",
		"playerNext":                 "下一項",
		"playerPlay":                 "開始",
		"playerPause":                "暫停",
		"playerSkip":                 "跳過",
		"playerGetReady":             "準備：",
		"playerAnnounce":             "準備：{exercise}",
		"playerFinished":             "訓練完成",
		"playerMuted":                "靜音",
		"playerHelp":                 "空白鍵 開始/暫停 · n 跳過 · m 靜音 · r 重來 · Esc 關閉",
		"setOf":                      "第 {n} / {total} 組",
		"errorFailed":                "生成課表失敗",
		"errorGeneric":               "發生錯誤",
		"errorMissingKey":            "尚未設定 API 金鑰",
		"errorInvalidInput":          "請描述目標並選擇器材與時間",
		"errorRateLimited":           "請求過於頻繁，請稍後再試",
		"errorAuth":                  "API 金鑰無效",
		"errorAccessDenied":          "存取被拒，請確認 API 金鑰權限",
		"errorMalformed":             "無法解讀生成的課表，請再試一次",
		"errorNoIntervals":           "此課表沒有可計時的組數",
		"footerTailored":             "課表將依你的選擇客製化",
		"howToExercise":              "查詢此動作做法",
		"generalFitness":             "一般體能",
		"language":                   "語言",
		"languageName":               "中文",
		"loadWorkout":                "載入課表檔案",
		"workoutFile":                "課表檔案（JSON 或 YAML）",
		"playerPaused":               "已暫停",
		"playerIdle":                 "按空白鍵開始",
		"checklistHelp":              "Enter 勾選 · Tab 切換清單 · s 開始 · h 教學連結 · g 新課表",
		"noWorkout":                  "尚未產生課表，按 1 建立。",
	},
}

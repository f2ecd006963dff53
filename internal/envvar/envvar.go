package envvar

const (
	// AmlrunEnv is the environment variable used to determine the environment
	AmlrunEnv = "AMLRUN_ENV"

	// AmlrunConfig is the environment variable used to override the config file path
	AmlrunConfig = "AMLRUN_CONFIG"

	// AmlrunLogFile is the environment variable used to enable logging to a file
	AmlrunLogFile = "AMLRUN_LOG_FILE"

	// HFToken is the environment variable holding the HuggingFace access token
	HFToken = "HF_TOKEN"

	// HFHome is the environment variable pointing at the HuggingFace cache root
	HFHome = "HF_HOME"

	// GPUCount is the environment variable used to determine the worker count
	GPUCount = "GPU_COUNT"

	// CogactCheckpoints is the legacy environment variable pointing at a mounted checkpoints datastore
	CogactCheckpoints = "COGACT_CHECKPOINTS"

	// AzureInputPrefix is the prefix Azure ML uses for resolved input mount variables
	AzureInputPrefix = "AZURE_ML_INPUT_"

	// AzureOutputPrefix is the prefix Azure ML uses for resolved output mount variables
	AzureOutputPrefix = "AZURE_ML_OUTPUT_"
)

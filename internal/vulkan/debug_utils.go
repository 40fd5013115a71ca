package vulkan

import (
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
)

var severities = []struct {
	vk       ext_debug_utils.DebugUtilsMessageSeverityFlags
	severity bootstrap.Severity
}{
	{ext_debug_utils.SeverityVerbose, bootstrap.SeverityVerbose},
	{ext_debug_utils.SeverityInfo, bootstrap.SeverityInfo},
	{ext_debug_utils.SeverityWarning, bootstrap.SeverityWarning},
	{ext_debug_utils.SeverityError, bootstrap.SeverityError},
}

var messageTypes = []struct {
	vk      ext_debug_utils.DebugUtilsMessageTypeFlags
	msgType bootstrap.MessageType
}{
	{ext_debug_utils.TypeGeneral, bootstrap.TypeGeneral},
	{ext_debug_utils.TypeValidation, bootstrap.TypeValidation},
	{ext_debug_utils.TypePerformance, bootstrap.TypePerformance},
}

type DebugUtils struct {
	driver ext_debug_utils.ExtensionDriver
}

func (d *DebugUtils) CreateMessenger(options bootstrap.DiagnosticsOptions) (bootstrap.Messenger, error) {
	messenger, _, err := d.driver.CreateDebugUtilsMessenger(nil, messengerCreateInfo(options))
	if err != nil {
		return nil, err
	}

	return &Messenger{driver: d.driver, messenger: messenger}, nil
}

type Messenger struct {
	driver    ext_debug_utils.ExtensionDriver
	messenger ext_debug_utils.DebugUtilsMessenger
}

func (m *Messenger) Destroy() {
	m.driver.DestroyDebugUtilsMessenger(m.messenger, nil)
}

func messengerCreateInfo(options bootstrap.DiagnosticsOptions) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	var severity ext_debug_utils.DebugUtilsMessageSeverityFlags
	for _, mapping := range severities {
		if options.Severities&mapping.severity != 0 {
			severity |= mapping.vk
		}
	}

	var msgType ext_debug_utils.DebugUtilsMessageTypeFlags
	for _, mapping := range messageTypes {
		if options.Types&mapping.msgType != 0 {
			msgType |= mapping.vk
		}
	}

	callback := options.Callback
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: severity,
		MessageType:     msgType,
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			msg := bootstrap.Message{Text: data.Message}
			for _, mapping := range severities {
				if severity&mapping.vk != 0 {
					msg.Severity |= mapping.severity
				}
			}
			for _, mapping := range messageTypes {
				if msgType&mapping.vk != 0 {
					msg.Types |= mapping.msgType
				}
			}
			return callback(msg)
		},
	}
}

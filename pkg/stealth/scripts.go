// Package stealth carries the built-in anti-detection init scripts. The
// script bodies are opaque static JavaScript selected by config.StealthMode;
// the manager injects exactly one of them per session before any custom
// scripts.
package stealth

import "github.com/entrhq/playpool/pkg/config"

// ScriptFor returns the built-in script for the given mode, or the empty
// string when the mode injects nothing.
func ScriptFor(mode config.StealthMode) string {
	switch {
	case mode.Light():
		return LightScript
	case mode.Full():
		return FullScript
	}
	return ""
}

// LightScript hides the basic automation markers: the webdriver flag,
// navigator.languages, and navigator.platform.
const LightScript = `
// Remove the automation marker
Object.defineProperty(navigator, 'webdriver', {
    get: () => undefined,
    configurable: true
});

// Plausible language preferences
Object.defineProperty(navigator, 'languages', {
    get: () => ['zh-CN', 'zh', 'en'],
    configurable: true
});

// Plausible platform
Object.defineProperty(navigator, 'platform', {
    get: () => 'Win32',
    configurable: true
});
`

// FullScript is a strict superset of LightScript. It additionally mocks
// plugins and mime types, hardware info, WebGL and AudioContext fingerprints,
// the permissions API, and removes chrome.runtime.
const FullScript = `
// ==================== navigator.webdriver ====================
Object.defineProperty(navigator, 'webdriver', {
    get: () => undefined,
    configurable: true
});

// ==================== navigator.languages ====================
Object.defineProperty(navigator, 'languages', {
    get: () => ['zh-CN', 'zh', 'en-US', 'en'],
    configurable: true
});

// ==================== navigator.plugins / mimeTypes ====================
// Headless browsers ship an empty plugin list; mock the usual suspects.
const mockPlugins = [
    {
        name: 'Chrome PDF Viewer',
        filename: 'internal-pdf-viewer',
        description: 'Portable Document Format',
        length: 1
    },
    {
        name: 'Native Client',
        filename: 'internal-nacl-plugin',
        description: 'Native Client',
        length: 2
    },
    {
        name: 'Chromium PDF Viewer',
        filename: 'mhjfbmdgcfjbbpaeojofohoefgiehjai',
        description: 'Portable Document Format',
        length: 1
    }
];

const mockMimeTypes = [
    {
        type: 'application/pdf',
        suffixes: 'pdf',
        description: 'Portable Document Format',
        enabledPlugin: mockPlugins[0]
    },
    {
        type: 'application/x-nacl',
        suffixes: '',
        description: 'Native Client Executable',
        enabledPlugin: mockPlugins[1]
    },
    {
        type: 'application/x-pnacl',
        suffixes: '',
        description: 'Portable Native Client Executable',
        enabledPlugin: mockPlugins[1]
    }
];

Object.defineProperty(navigator, 'plugins', {
    get: () => {
        const plugins = [...mockPlugins];
        plugins.length = mockPlugins.length;
        plugins.item = function(index) { return this[index] || null; };
        plugins.namedItem = function(name) {
            return this.find(plugin => plugin.name === name) || null;
        };
        return plugins;
    },
    configurable: true
});

Object.defineProperty(navigator, 'mimeTypes', {
    get: () => {
        const mimeTypes = [...mockMimeTypes];
        mimeTypes.length = mockMimeTypes.length;
        mimeTypes.item = function(index) { return this[index] || null; };
        mimeTypes.namedItem = function(name) {
            return this.find(mimeType => mimeType.type === name) || null;
        };
        return mimeTypes;
    },
    configurable: true
});

// ==================== hardware info ====================
Object.defineProperty(navigator, 'platform', {
    get: () => 'Win32',
    configurable: true
});

Object.defineProperty(navigator, 'hardwareConcurrency', {
    get: () => 8,
    configurable: true
});

Object.defineProperty(navigator, 'deviceMemory', {
    get: () => 8,
    configurable: true
});

Object.defineProperty(navigator, 'appName', {
    get: () => 'Netscape',
    configurable: true
});

Object.defineProperty(navigator, 'product', {
    get: () => 'Gecko',
    configurable: true
});

Object.defineProperty(navigator, 'productSub', {
    get: () => '20030107',
    configurable: true
});

// ==================== WebGL fingerprint ====================
// Report a common GPU instead of the virtualized renderer.
if (typeof WebGLRenderingContext !== 'undefined') {
    const getParameter = WebGLRenderingContext.prototype.getParameter;
    WebGLRenderingContext.prototype.getParameter = function(parameter) {
        // UNMASKED_VENDOR_WEBGL
        if (parameter === 37445) {
            return 'Intel Inc.';
        }
        // UNMASKED_RENDERER_WEBGL
        if (parameter === 37446) {
            return 'Intel(R) UHD Graphics 630';
        }
        return getParameter.call(this, parameter);
    };
}

if (typeof WebGL2RenderingContext !== 'undefined') {
    const getParameter2 = WebGL2RenderingContext.prototype.getParameter;
    WebGL2RenderingContext.prototype.getParameter = function(parameter) {
        if (parameter === 37445) {
            return 'Intel Inc.';
        }
        if (parameter === 37446) {
            return 'Intel(R) UHD Graphics 630';
        }
        return getParameter2.call(this, parameter);
    };
}

// ==================== AudioContext fingerprint ====================
const OriginalAudioContext = window.AudioContext || window.webkitAudioContext;
if (OriginalAudioContext) {
    const AudioContextProxy = new Proxy(OriginalAudioContext, {
        construct(target, args) {
            const context = new target(...args);

            if (context.baseLatency !== undefined) {
                Object.defineProperty(context, 'baseLatency', {
                    get: () => 0.00512,
                    configurable: true
                });
            }

            return context;
        }
    });

    window.AudioContext = AudioContextProxy;
    if (window.webkitAudioContext) {
        window.webkitAudioContext = AudioContextProxy;
    }
}

// ==================== permissions API ====================
if (navigator.permissions && navigator.permissions.query) {
    const originalQuery = navigator.permissions.query;
    navigator.permissions.query = function(parameters) {
        return originalQuery(parameters).then(result => {
            if (parameters.name === 'notifications') {
                Object.defineProperty(result, 'state', {
                    get: () => 'granted'
                });
            }
            return result;
        });
    };
}

// ==================== chrome.runtime ====================
// Extension APIs leak the automation environment.
if (typeof chrome !== 'undefined' && chrome.runtime) {
    delete chrome.runtime;
}

// ==================== devtools probe ====================
let devtools = { open: false, orientation: null };
setInterval(() => {
    if (window.outerHeight - window.innerHeight > 200 ||
        window.outerWidth - window.innerWidth > 200) {
        devtools.open = true;
        devtools.orientation = window.outerHeight - window.innerHeight > 200 ? 'vertical' : 'horizontal';
    } else {
        devtools.open = false;
        devtools.orientation = null;
    }
}, 500);
`
